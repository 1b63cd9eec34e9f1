package corpus

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"jobmarket-engine/internal/scrape/fetch"
	"jobmarket-engine/internal/validate"

	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Concurrency bounds parallel codes in flight; <=1 runs sequentially,
	// which is the default since the site rate-limits anyway.
	Concurrency int
	// KeepRejected retains rejected records in Records (flagged with their
	// reasons) instead of ledger-only. Either way a rejection is never
	// silent.
	KeepRejected bool
	// ExcludeFlagged drops low-completeness records from Records. They
	// still count in Summary so totals reconcile with the input count.
	ExcludeFlagged bool
	// Deterministic re-sorts output by input order after a concurrent run.
	Deterministic bool
	// OnProgress fires after each code's terminal state.
	OnProgress ProgressFunc
}

// Builder iterates the occupation list and aggregates the dataset.
type Builder struct {
	fetcher   Fetcher
	assembler Assembler
	policy    validate.Policy
	opts      Options
}

func NewBuilder(f Fetcher, a Assembler, policy validate.Policy, opts Options) *Builder {
	return &Builder{fetcher: f, assembler: a, policy: policy, opts: opts}
}

type outcome struct {
	index   int
	entry   *Entry   // nil when the code failed or was rejected-and-dropped
	failure *Failure // nil when the code was stored
	label   string   // terminal outcome for progress reporting
	counted func(*Summary)
}

// Run processes every input. One occupation's failure never aborts the
// batch; cancellation stops new fetches while in-flight ones finish or time
// out, and the partial result is returned with ctx.Err().
func (b *Builder) Run(ctx context.Context, inputs []Input) (Result, error) {
	var (
		mu       sync.Mutex
		res      Result
		order    = make([]int, 0, len(inputs)) // input index per Records entry
		ledgerAt = make([]int, 0, len(inputs))
	)

	record := func(oc outcome) {
		mu.Lock()
		defer mu.Unlock()
		oc.counted(&res.Counts)
		if oc.entry != nil {
			res.Records = append(res.Records, *oc.entry)
			order = append(order, oc.index)
		}
		if oc.failure != nil {
			res.Ledger = append(res.Ledger, *oc.failure)
			ledgerAt = append(ledgerAt, oc.index)
		}
		size := len(res.Records)
		if b.opts.OnProgress != nil {
			b.opts.OnProgress(inputs[oc.index].Code, oc.label, size)
		}
	}

	// A cancelled run stops scheduling new codes; codes already in flight
	// run on a detached context so their requests finish or time out
	// normally instead of being torn down mid-read.
	inflight := context.WithoutCancel(ctx)

	if b.opts.Concurrency <= 1 {
		for i, in := range inputs {
			if ctx.Err() != nil {
				return b.finish(res, order, ledgerAt), ctx.Err()
			}
			record(b.process(inflight, i, in))
		}
		return b.finish(res, order, ledgerAt), nil
	}

	var g errgroup.Group
	g.SetLimit(b.opts.Concurrency)
	for i, in := range inputs {
		if ctx.Err() != nil {
			break // stop scheduling; workers already running drain
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			record(b.process(inflight, i, in))
			return nil
		})
	}
	_ = g.Wait()
	return b.finish(res, order, ledgerAt), ctx.Err()
}

// process walks one code through the state machine:
// Pending -> Fetching -> Extracting -> Validated -> Stored | Failed.
func (b *Builder) process(ctx context.Context, index int, in Input) outcome {
	doc, err := b.fetcher.Fetch(ctx, in.URL)
	if err != nil {
		attempts := 1
		var fe *fetch.Error
		if errors.As(err, &fe) {
			attempts = fe.Attempts
		}
		log.Printf("[corpus] %s: fetch failed after %d attempt(s): %v", in.Code, attempts, err)
		return outcome{
			index:   index,
			failure: &Failure{Code: in.Code, Reason: err.Error(), Attempts: attempts},
			label:   "failed",
			counted: func(s *Summary) { s.Failed++ },
		}
	}

	rec := b.assembler.Assemble(in.Code, doc)
	if rec.Title == "" {
		rec.Title = in.Title
	}
	if rec.URL == "" {
		rec.URL = in.URL
	}

	out := b.policy.Validate(&rec)
	switch out.Status {
	case validate.Rejected:
		reason := "rejected: " + strings.Join(out.Reasons, "; ")
		log.Printf("[corpus] %s: %s", in.Code, reason)
		oc := outcome{
			index:   index,
			failure: &Failure{Code: in.Code, Reason: reason, Attempts: 1},
			label:   "rejected",
			counted: func(s *Summary) { s.Rejected++ },
		}
		if b.opts.KeepRejected {
			oc.entry = &Entry{Record: rec, Outcome: out}
		}
		return oc

	case validate.Flagged:
		oc := outcome{
			index:   index,
			label:   "flagged",
			counted: func(s *Summary) { s.Flagged++ },
		}
		if !b.opts.ExcludeFlagged {
			oc.entry = &Entry{Record: rec, Outcome: out}
		}
		return oc
	}

	return outcome{
		index:   index,
		entry:   &Entry{Record: rec, Outcome: out},
		label:   "accepted",
		counted: func(s *Summary) { s.Accepted++ },
	}
}

// finish restores input order when the caller asked for determinism.
func (b *Builder) finish(res Result, order, ledgerAt []int) Result {
	if !b.opts.Deterministic {
		return res
	}
	sort.Sort(entriesByIndex{items: res.Records, idx: order})
	sort.Sort(failuresByIndex{items: res.Ledger, idx: ledgerAt})
	return res
}

type entriesByIndex struct {
	items []Entry
	idx   []int
}

func (s entriesByIndex) Len() int           { return len(s.items) }
func (s entriesByIndex) Less(i, j int) bool { return s.idx[i] < s.idx[j] }
func (s entriesByIndex) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
}

type failuresByIndex struct {
	items []Failure
	idx   []int
}

func (s failuresByIndex) Len() int           { return len(s.items) }
func (s failuresByIndex) Less(i, j int) bool { return s.idx[i] < s.idx[j] }
func (s failuresByIndex) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.idx[i], s.idx[j] = s.idx[j], s.idx[i]
}
