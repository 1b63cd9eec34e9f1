// Package extract turns raw matched content into normalized record values.
// Every extractor is a pure function; an absent field produces the field's
// canonical empty value (nil list or unknown scalar), never an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/scrape/probe"
)

// List splits matched content into items: trimmed, empties dropped,
// deduplicated case-insensitively while preserving first-seen order.
func List(res probe.Result, ok bool) []string {
	if !ok {
		return nil
	}
	return Dedupe(res.Text())
}

// Dedupe normalizes a raw item list the same way List does.
func Dedupe(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range items {
		it = strings.Join(strings.Fields(it), " ")
		if it == "" {
			continue
		}
		key := strings.ToLower(it)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, it)
	}
	return out
}

// Scalar returns the matched content as one normalized string, "" if absent.
func Scalar(res probe.Result, ok bool) string {
	if !ok {
		return ""
	}
	return res.JoinedText()
}

var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{2})?)`),
	regexp.MustCompile(`([\d,]+(?:\.\d{2})?)\s*(?:dollars?|USD|per year)`),
}

// Salary parses a median salary out of matched content. It returns nil when
// nothing parseable is present: zero is a legitimate reported value, so the
// absence sentinel must not be a number.
func Salary(res probe.Result, ok bool) *float64 {
	if !ok {
		return nil
	}
	return ParseSalary(res.JoinedText())
}

// ParseSalary extracts the first salary-looking figure from text.
func ParseSalary(text string) *float64 {
	for _, re := range salaryPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// educationLadder is checked most-specific first so "master's degree or
// higher" doesn't resolve to a lower rung mentioned later in the page.
var educationLadder = []struct {
	keyword string
	level   domain.EducationLevel
}{
	{"doctora", domain.EducationDoctoral}, // doctoral / doctorate
	{"ph.d", domain.EducationDoctoral},
	{"master", domain.EducationMaster},
	{"bachelor", domain.EducationBachelor},
	{"associate", domain.EducationAssociate},
	{"certificate", domain.EducationCertificate},
	{"high school", domain.EducationHighSchool},
}

// Education maps matched content onto the closed education enum, Unknown
// when nothing recognizable is present.
func Education(res probe.Result, ok bool) domain.EducationLevel {
	if !ok {
		return domain.EducationUnknown
	}
	return ParseEducation(res.JoinedText())
}

// ParseEducation recognizes an education level mentioned in text.
func ParseEducation(text string) domain.EducationLevel {
	lower := strings.ToLower(text)
	for _, rung := range educationLadder {
		if strings.Contains(lower, rung.keyword) {
			return rung.level
		}
	}
	return domain.EducationUnknown
}

// TechSkills canonicalizes free-text technology mentions against the closed
// vocabulary. Output uses the vocabulary's canonical casing and ordering of
// first mention is preserved per the matched text.
func TechSkills(res probe.Result, ok bool, vocab *Vocabulary) []string {
	if !ok || vocab == nil {
		return nil
	}
	items := res.Text()
	var out []string
	seen := map[string]bool{}
	for _, item := range items {
		for _, term := range vocab.Match(item) {
			key := strings.ToLower(term)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, term)
		}
	}
	return out
}
