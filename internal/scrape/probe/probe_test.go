package probe

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestResolvePrimaryProbeWins(t *testing.T) {
	r := NewResolver(map[string][]Probe{
		"title": {
			{Selector: "h1.main"},
			{Selector: "h1"},
		},
	})
	d := doc(t, `<html><body><h1 class="main">Actuaries</h1><h1>Other</h1></body></html>`)

	res, ok := r.Resolve(d, "title")
	require.True(t, ok)
	require.Equal(t, "h1.main", res.Selector)
	require.Equal(t, []string{"Actuaries"}, res.Text())
}

func TestResolveFallsThroughToLaterProbe(t *testing.T) {
	r := NewResolver(map[string][]Probe{
		"tasks": {
			{Selector: "div#Tasks ul li"},
			{Selector: "section.tasks li"},
			{Selector: "table#tasks td"},
		},
	})
	d := doc(t, `<html><body><table id="tasks"><tr><td>Analyze data</td></tr><tr><td>Write reports</td></tr></table></body></html>`)

	res, ok := r.Resolve(d, "tasks")
	require.True(t, ok)
	require.Equal(t, "table#tasks td", res.Selector)
	require.Equal(t, []string{"Analyze data", "Write reports"}, res.Text())
}

func TestResolveSkipsEmptyMatches(t *testing.T) {
	r := NewResolver(map[string][]Probe{
		"description": {
			{Selector: "p.lead"},
			{Selector: "p.summary"},
		},
	})
	// p.lead exists but holds only whitespace, so the second probe wins.
	d := doc(t, `<html><body><p class="lead">   </p><p class="summary">Does things.</p></body></html>`)

	res, ok := r.Resolve(d, "description")
	require.True(t, ok)
	require.Equal(t, "p.summary", res.Selector)
}

func TestResolveAbsentField(t *testing.T) {
	r := NewResolver(map[string][]Probe{
		"salary": {{Selector: "span.wage"}, {Selector: "td.wage"}},
	})
	d := doc(t, `<html><body><p>nothing here</p></body></html>`)

	_, ok := r.Resolve(d, "salary")
	require.False(t, ok)
}

func TestResolveUnknownField(t *testing.T) {
	r := NewResolver(map[string][]Probe{})
	d := doc(t, `<html><body><p>x</p></body></html>`)

	_, ok := r.Resolve(d, "never-registered")
	require.False(t, ok)
}

func TestResolveAcceptRejectsLooseMatch(t *testing.T) {
	r := NewResolver(map[string][]Probe{
		"links": {
			{
				Selector: "a",
				Accept: func(sel *goquery.Selection) bool {
					href, _ := sel.First().Attr("href")
					return strings.Contains(href, "/summary/")
				},
			},
			{Selector: "span.code"},
		},
	})
	d := doc(t, `<html><body><a href="/about">About</a><span class="code">15-1252.00</span></body></html>`)

	res, ok := r.Resolve(d, "links")
	require.True(t, ok)
	require.Equal(t, "span.code", res.Selector)
}

func TestTextNormalizesWhitespace(t *testing.T) {
	r := NewResolver(map[string][]Probe{"items": {{Selector: "li"}}})
	d := doc(t, "<html><body><ul><li>  Critical \n\t thinking </li><li></li><li>Writing</li></ul></body></html>")

	res, ok := r.Resolve(d, "items")
	require.True(t, ok)
	require.Equal(t, []string{"Critical thinking", "Writing"}, res.Text())
	require.Equal(t, "Critical thinking Writing", res.JoinedText())
}
