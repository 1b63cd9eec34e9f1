package onet

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestSummaryURL(t *testing.T) {
	require.Equal(t, "https://www.onetonline.org/link/summary/15-1252.00", SummaryURL("15-1252.00"))
}

func TestFamilyURL(t *testing.T) {
	require.Equal(t, "https://www.onetonline.org/find/family?f=15&g=Go", FamilyURL(15))
}

func TestCodeFromURL(t *testing.T) {
	require.Equal(t, "15-1252.00", CodeFromURL("https://www.onetonline.org/link/summary/15-1252.00"))
	require.Equal(t, "11-1011.03", CodeFromURL("/link/summary/11-1011.03"))
	require.Equal(t, "53-3032.00", CodeFromURL("/summary/53-3032.00"))
	require.Equal(t, "", CodeFromURL("/find/family?f=15"))
	require.Equal(t, "", CodeFromURL("/link/summary/not-a-code"))
	require.Equal(t, "", CodeFromURL(""))
}

// pageFetcher serves canned HTML per URL; unknown URLs fail.
type pageFetcher map[string]string

func (f pageFetcher) Fetch(_ context.Context, url string) (*goquery.Document, error) {
	html, ok := f[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

func familyPage(links ...string) string {
	var b strings.Builder
	b.WriteString("<html><body><table>")
	for _, l := range links {
		b.WriteString(l)
	}
	b.WriteString("</table></body></html>")
	return b.String()
}

func link(code, title string) string {
	return fmt.Sprintf(`<tr><td class="report2"><a href="/link/summary/%s">%s</a></td></tr>`, code, title)
}

func TestDiscoverCollectsAndDedupes(t *testing.T) {
	const base = "http://test"
	f := pageFetcher{
		familyURL(base, 11): familyPage(
			link("11-1011.00", "Chief Executives"),
			link("11-1021.00", "General and Operations Managers"),
			link("11-1011.00", "Chief Executives"), // repeated on page
		),
		familyURL(base, 15): familyPage(
			link("15-1252.00", "Software Developers"),
		),
	}
	ix := &Index{fetcher: f, base: base}

	refs, err := ix.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 3)

	require.Equal(t, Ref{
		Code:   "11-1011.00",
		Title:  "Chief Executives",
		URL:    SummaryURL("11-1011.00"),
		Family: "Management Occupations",
	}, refs[0])
	require.Equal(t, "11-1021.00", refs[1].Code)
	require.Equal(t, "15-1252.00", refs[2].Code)
	require.Equal(t, "Computer and Mathematical Occupations", refs[2].Family)
}

func TestDiscoverSkipsFailedFamilies(t *testing.T) {
	const base = "http://test"
	// only one family page resolves; the other 21 fetches fail and are skipped
	f := pageFetcher{
		familyURL(base, 15): familyPage(link("15-2011.00", "Actuaries")),
	}
	ix := &Index{fetcher: f, base: base}

	refs, err := ix.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, "15-2011.00", refs[0].Code)
}

func TestDiscoverEmptyIsError(t *testing.T) {
	ix := &Index{fetcher: pageFetcher{}, base: "http://test"}
	_, err := ix.Discover(context.Background())
	require.Error(t, err)
}

func TestDiscoverFallbackProbe(t *testing.T) {
	const base = "http://test"
	// older layout without td.report2 cells
	f := pageFetcher{
		familyURL(base, 29): familyPage(
			`<a href="/link/summary/29-1141.00">Registered Nurses</a>`,
			`<a href="/about">About this site</a>`,
		),
	}
	ix := &Index{fetcher: f, base: base}

	refs, err := ix.Discover(context.Background())
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.Equal(t, "29-1141.00", refs[0].Code)
	require.Equal(t, "Registered Nurses", refs[0].Title)
}

func TestDiscoverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ix := &Index{fetcher: pageFetcher{}, base: "http://test"}

	_, err := ix.Discover(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
