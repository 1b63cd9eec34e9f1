// Package onet knows the O*NET OnLine site: its URLs, the selector probes
// for its historical page layouts, and how to discover occupation codes from
// the family index pages.
package onet

import (
	"fmt"
	"regexp"
)

const BaseURL = "https://www.onetonline.org"

// SummaryURL is the canonical detail page for one occupation code.
func SummaryURL(code string) string {
	return fmt.Sprintf("%s/link/summary/%s", BaseURL, code)
}

// FamilyURL lists every occupation in one SOC major group.
func FamilyURL(familyID int) string {
	return familyURL(BaseURL, familyID)
}

func familyURL(base string, familyID int) string {
	return fmt.Sprintf("%s/find/family?f=%d&g=Go", base, familyID)
}

var codeRe = regexp.MustCompile(`/(?:link/)?summary/(\d{2}-\d{4}\.\d{2})`)

// CodeFromURL pulls the occupation code out of a summary link, "" if the
// link is not a summary link.
func CodeFromURL(url string) string {
	m := codeRe.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}
