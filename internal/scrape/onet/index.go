package onet

import (
	"context"
	"fmt"
	"log"
	"strings"

	"jobmarket-engine/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// Ref is one occupation discovered on a family index page.
type Ref struct {
	Code   string
	Title  string
	URL    string
	Family string
}

// Fetcher is the page-getting dependency; satisfied by *fetch.Client.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Index discovers the occupation code list from the fixed family index
// pages. It is the optional front door; callers with their own code list
// skip it entirely.
type Index struct {
	fetcher Fetcher
	base    string
}

func NewIndex(f Fetcher) *Index {
	return &Index{fetcher: f, base: BaseURL}
}

// Discover walks every SOC family page and collects summary links, in
// family order then page order, deduplicated by code. A family page that
// fails to fetch is logged and skipped; only a fully empty result is an
// error.
func (ix *Index) Discover(ctx context.Context) ([]Ref, error) {
	seen := map[string]bool{}
	var refs []Ref

	for _, fam := range domain.Families() {
		if ctx.Err() != nil {
			return refs, ctx.Err()
		}

		doc, err := ix.fetcher.Fetch(ctx, familyURL(ix.base, fam.ID))
		if err != nil {
			log.Printf("[index] family %d (%s): %v", fam.ID, fam.Name, err)
			continue
		}

		found := 0
		for _, p := range indexProbes {
			links := doc.Find(p.Selector)
			if links.Length() == 0 {
				continue
			}
			links.Each(func(_ int, a *goquery.Selection) {
				href, ok := a.Attr("href")
				if !ok {
					return
				}
				code := CodeFromURL(href)
				if code == "" || seen[code] {
					return
				}
				title := strings.Join(strings.Fields(a.Text()), " ")
				if title == "" {
					return
				}
				seen[code] = true
				refs = append(refs, Ref{
					Code:   code,
					Title:  title,
					URL:    SummaryURL(code),
					Family: fam.Name,
				})
				found++
			})
			break // first probe with matches wins
		}
		log.Printf("[index] %s: %d occupations", fam.Name, found)
	}

	if len(refs) == 0 {
		return nil, fmt.Errorf("index discovery found no occupations")
	}
	return refs, nil
}
