package bls

import (
	"context"
	"log"

	"jobmarket-engine/internal/corpus"
)

const batchSize = 50 // BLS API cap per timeseries request

// EnrichSalaries fills in missing median salaries from BLS data. Scraped
// values win; only records with no salary get the official figure. Returns
// how many records were enriched. API failures are logged and skipped so
// enrichment never sinks an otherwise good corpus.
func (c *Client) EnrichSalaries(ctx context.Context, entries []corpus.Entry, startYear, endYear int) int {
	missing := make(map[string][]int) // series ID -> entry indexes
	var ids []string
	for i, e := range entries {
		if e.Record.SalaryMedian != nil {
			continue
		}
		id := SeriesIDForOccupation(e.Record.Code)
		if _, ok := missing[id]; !ok {
			ids = append(ids, id)
		}
		missing[id] = append(missing[id], i)
	}
	if len(ids) == 0 {
		return 0
	}

	enriched := 0
	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		series, err := c.TimeSeries(ctx, ids[start:end], startYear, endYear)
		if err != nil {
			log.Printf("[bls] batch %d-%d: %v", start, end, err)
			continue
		}
		for _, s := range series {
			v, ok := s.Latest()
			if !ok {
				continue
			}
			for _, idx := range missing[s.ID] {
				salary := v
				entries[idx].Record.SalaryMedian = &salary
				enriched++
			}
		}
	}
	return enriched
}
