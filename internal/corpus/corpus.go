// Package corpus drives the whole pipeline: codes in, validated occupation
// records and a failure ledger out.
package corpus

import (
	"context"

	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/validate"

	"github.com/PuerkitoBio/goquery"
)

// State of one occupation code as it moves through the pipeline.
type State int

const (
	Pending State = iota
	Fetching
	Extracting
	Validated
	Stored
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Fetching:
		return "fetching"
	case Extracting:
		return "extracting"
	case Validated:
		return "validated"
	case Stored:
		return "stored"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Input is one queued occupation: its code, canonical detail-page URL, and
// whatever the index step already knew about it.
type Input struct {
	Code  string
	Title string // index-page title, fallback when the page yields none
	URL   string
}

// Failure is one ledger entry: a code that never made it into the corpus.
type Failure struct {
	Code     string `json:"code"`
	Reason   string `json:"reason"`
	Attempts int    `json:"attempts"`
}

// Entry is a stored record together with its validation outcome, so
// downstream consumers can see and act on flags.
type Entry struct {
	Record  domain.OccupationRecord
	Outcome validate.Outcome
}

// Summary is the terminal-state tally for one run. Accepted + Flagged +
// Rejected + Failed always equals the input count.
type Summary struct {
	Accepted int
	Flagged  int
	Rejected int
	Failed   int
}

// Result of a run. Records holds accepted and (unless excluded) flagged
// entries; Ledger holds fetch failures and rejected records.
type Result struct {
	Records []Entry
	Ledger  []Failure
	Counts  Summary
}

// Fetcher gets one page; satisfied by *fetch.Client.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Assembler turns a fetched document into a record; satisfied by
// *scrape.Assembler.
type Assembler interface {
	Assemble(code string, doc *goquery.Document) domain.OccupationRecord
}

// ProgressFunc is invoked after each code reaches a terminal state.
type ProgressFunc func(code string, outcome string, corpusSize int)
