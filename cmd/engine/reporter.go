package main

import (
	"log"
	"os"
	"path/filepath"

	"jobmarket-engine/internal/analyze"
	"jobmarket-engine/internal/config"
	"jobmarket-engine/internal/corpus"
	"jobmarket-engine/internal/events"
	"jobmarket-engine/internal/export"
)

// logInsights prints the dataset-level wrap-up: data quality and the most
// frequent technology skills across the corpus.
func logInsights(res corpus.Result) {
	if len(res.Records) == 0 {
		return
	}
	rep := analyze.Completeness(res.Records)
	log.Printf("[analyze] completeness: mean=%.2f min=%.2f flagged=%d/%d",
		rep.Mean, rep.Min, rep.Flagged, rep.Records)
	for _, sc := range analyze.TopSkills(res.Records, 10) {
		log.Printf("[analyze] skill %-20s %d occupations", sc.Skill, sc.Count)
	}
	for family, n := range analyze.FamilyDistribution(res.Records) {
		log.Printf("[analyze] family %s: %d", family, n)
	}
}

// startReporter subscribes to progress events and logs a line per completed
// code. The returned stop function unsubscribes and waits for the log tail,
// so main can flush it before printing the summary even after a cancelled
// run delivered fewer events than expected.
func startReporter(hub *events.Hub, expected int) (stop func()) {
	ch := hub.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		seenCount := 0
		for evt := range ch {
			seenCount++
			log.Printf("[progress] %d/%d %s: %s (corpus=%d)",
				seenCount, expected, evt.Code, evt.Outcome, evt.CorpusSize)
		}
	}()
	return func() {
		hub.Unsubscribe(ch)
		<-done
	}
}

// writeExports serializes the finished corpus to the configured CSV and
// JSON paths, relative to the data dir.
func writeExports(cfg config.Config, dataDir string, res corpus.Result) error {
	write := func(path string, fn func(f *os.File) error) error {
		if path == "" {
			return nil
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(dataDir, path)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := fn(f); err != nil {
			return err
		}
		log.Printf("[export] wrote %s", path)
		return f.Sync()
	}

	if err := write(cfg.Export.CSVPath, func(f *os.File) error {
		return export.WriteCSV(f, res)
	}); err != nil {
		return err
	}
	return write(cfg.Export.JSONPath, func(f *os.File) error {
		return export.WriteJSON(f, res)
	})
}
