package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"jobmarket-engine/internal/corpus"
	"jobmarket-engine/internal/scrape/fetch"
	"jobmarket-engine/internal/scrape/onet"
)

// loadInputs builds the occupation queue: from a codes file when one is
// given, otherwise by discovering codes from the site's family index pages.
func loadInputs(ctx context.Context, codesPath string, fetcher *fetch.Client) ([]corpus.Input, error) {
	if codesPath != "" {
		return readCodesFile(codesPath)
	}

	log.Printf("[engine] no codes file; discovering occupations from index pages")
	refs, err := onet.NewIndex(fetcher).Discover(ctx)
	if err != nil {
		return nil, err
	}
	inputs := make([]corpus.Input, len(refs))
	for i, r := range refs {
		inputs[i] = corpus.Input{Code: r.Code, Title: r.Title, URL: r.URL}
	}
	return inputs, nil
}

// readCodesFile parses "code" or "code<TAB>title" lines; blank lines and
// #-comments are skipped.
func readCodesFile(path string) ([]corpus.Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var inputs []corpus.Input
	seen := map[string]bool{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code, title, _ := strings.Cut(line, "\t")
		code = strings.TrimSpace(code)
		if seen[code] {
			continue
		}
		seen[code] = true
		inputs = append(inputs, corpus.Input{
			Code:  code,
			Title: strings.TrimSpace(title),
			URL:   onet.SummaryURL(code),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no occupation codes in %s", path)
	}
	return inputs, nil
}
