package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"jobmarket-engine/internal/bls"
	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/corpus"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/scrape"
	"jobmarket-engine/internal/scrape/extract"
	"jobmarket-engine/internal/scrape/fetch"
	"jobmarket-engine/internal/scrape/onet"
	"jobmarket-engine/internal/scrape/probe"
	"jobmarket-engine/internal/secrets"
	"jobmarket-engine/internal/store"
	"jobmarket-engine/internal/validate"

	"github.com/gofrs/flock"
)

func main() {
	var (
		dataDir   = flag.String("data", envOr("JOBMARKET_DATA_DIR", "."), "data directory (config, db, exports)")
		codesPath = flag.String("codes", "", "file with occupation codes (code[\\t title] per line); empty = discover from index pages")
		maxCodes  = flag.Int("max", 0, "cap on occupations processed, 0 = all")
	)
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One harvest at a time per data dir; two writers on one sqlite file
	// corrupt checkpoints.
	lock := flock.New(filepath.Join(*dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("run lock: %v", err)
	}
	if !locked {
		log.Fatalf("another harvest is already running in %s", *dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	cfgPath, err := config.EnsureUserConfig(*dataDir)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed (%s): %v", cfgPath, err)
	}
	if err := config.OverlayVocabulary(&cfg, filepath.Join(*dataDir, "vocabulary.yml")); err != nil {
		log.Fatalf("vocabulary overlay failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal(err)
	}

	db, err := store.Open(filepath.Join(*dataDir, "jobmarket.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	// Ctrl-C stops scheduling new fetches; in-flight ones drain.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher := fetch.New(fetchConfig(cfg))
	resolver := probe.NewResolver(onet.DefaultProbes())
	vocab := extract.NewVocabulary(cfg.TechTerms(extract.DefaultTechTerms))
	assembler := scrape.NewAssembler(resolver, vocab)

	inputs, err := loadInputs(ctx, *codesPath, fetcher)
	if err != nil {
		log.Fatalf("occupation list: %v", err)
	}
	if *maxCodes > 0 && len(inputs) > *maxCodes {
		inputs = inputs[:*maxCodes]
	}
	log.Printf("[engine] %d occupations queued", len(inputs))

	hub := events.NewHub()
	stopReporter := startReporter(hub, len(inputs))

	builder := corpus.NewBuilder(
		fetcher,
		assembler,
		validate.Policy{CompletenessThreshold: cfg.Validation.CompletenessThreshold},
		corpus.Options{
			Concurrency:    cfg.Scraper.Concurrency,
			KeepRejected:   cfg.Validation.KeepRejected,
			ExcludeFlagged: cfg.Validation.ExcludeFlagged,
			Deterministic:  cfg.Validation.DeterministicOrder,
			OnProgress: func(code, outcome string, size int) {
				hub.Publish(events.NewProgress(code, outcome, size))
			},
		},
	)

	started := time.Now()
	res, runErr := builder.Run(ctx, inputs)
	stopReporter()
	if runErr != nil {
		log.Printf("[engine] run stopped early: %v", runErr)
	}

	if cfg.BLS.Enabled {
		apiKey, err := secrets.GetBLSAPIKey(cfg.BLS.KeyringAccount)
		if err != nil {
			log.Printf("[bls] %v (continuing keyless)", err)
		}
		n := bls.New(apiKey).EnrichSalaries(context.Background(), res.Records, cfg.BLS.StartYear, cfg.BLS.EndYear)
		log.Printf("[bls] enriched %d records with official salary data", n)
	}

	saveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := store.SaveResult(saveCtx, db.Pool, res); err != nil {
		log.Printf("[store] save failed: %v", err)
	}

	if err := writeExports(cfg, *dataDir, res); err != nil {
		log.Printf("[export] %v", err)
	}

	logInsights(res)
	log.Printf("[engine] done in %s: accepted=%d flagged=%d rejected=%d failed=%d",
		time.Since(started).Round(time.Second),
		res.Counts.Accepted, res.Counts.Flagged, res.Counts.Rejected, res.Counts.Failed)
}

func fetchConfig(cfg config.Config) fetch.Config {
	fc := fetch.Config{
		Timeout:        cfg.Timeout(),
		MaxRetries:     cfg.Scraper.MaxRetries,
		RetryDelay:     cfg.RetryDelay(),
		RateLimitDelay: cfg.RateLimitDelay(),
		RequestDelay:   cfg.RequestDelay(),
	}
	if cfg.Scraper.Backoff == "exponential" {
		fc.Backoff = fetch.ExponentialBackoff{Base: cfg.RetryDelay(), Max: time.Minute}
	}
	return fc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
