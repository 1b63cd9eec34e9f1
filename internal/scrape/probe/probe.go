// Package probe locates logical fields inside a fetched document. Page
// markup drifts across occupations and over time, so every field carries an
// ordered list of structural probes reflecting the layouts seen so far; the
// first probe that matches non-empty content wins.
package probe

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// A Probe is one structural pattern for finding a field's content.
type Probe struct {
	// Selector is a CSS selector tried against the whole document.
	Selector string
	// Accept optionally rejects a matched selection (for probes whose
	// selector alone is too loose). Nil means "non-empty text".
	Accept func(sel *goquery.Selection) bool
}

// Result is the content a probe matched.
type Result struct {
	Selection *goquery.Selection
	Selector  string // the probe that won, for diagnostics
}

// Text returns the matched selections' texts, one entry per node,
// whitespace-normalized, empties dropped. Order follows the document.
func (r Result) Text() []string {
	var out []string
	r.Selection.Each(func(_ int, s *goquery.Selection) {
		t := strings.Join(strings.Fields(s.Text()), " ")
		if t != "" {
			out = append(out, t)
		}
	})
	return out
}

// JoinedText returns all matched text as one normalized string.
func (r Result) JoinedText() string {
	return strings.Join(r.Text(), " ")
}

// Resolver resolves field keys to content using injected probe tables.
// The table is read-only after construction.
type Resolver struct {
	table map[string][]Probe
}

func NewResolver(table map[string][]Probe) *Resolver {
	return &Resolver{table: table}
}

// Resolve tries the field's probes in order and returns the first non-empty
// match. ok=false means the field is absent from this document, which is a
// data-quality signal, never an error.
func (r *Resolver) Resolve(doc *goquery.Document, field string) (Result, bool) {
	for _, p := range r.table[field] {
		sel := doc.Find(p.Selector)
		if sel.Length() == 0 {
			continue
		}
		if p.Accept != nil {
			if !p.Accept(sel) {
				continue
			}
		} else if strings.TrimSpace(sel.Text()) == "" {
			continue
		}
		return Result{Selection: sel, Selector: p.Selector}, true
	}
	return Result{}, false
}

// Fields returns the field keys the resolver knows about.
func (r *Resolver) Fields() []string {
	out := make([]string, 0, len(r.table))
	for k := range r.table {
		out = append(out, k)
	}
	return out
}
