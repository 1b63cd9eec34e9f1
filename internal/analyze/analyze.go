// Package analyze computes dataset-level insights over a finished corpus:
// which skills show up most, how occupations spread across families, and how
// complete the scrape was.
package analyze

import (
	"sort"

	"jobmarket-engine/internal/corpus"
)

// SkillCount is one technology skill with its occupation frequency.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// TopSkills counts how many records mention each technology skill and
// returns the top n, most frequent first, ties broken alphabetically so the
// output is stable.
func TopSkills(entries []corpus.Entry, n int) []SkillCount {
	counts := map[string]int{}
	for _, e := range entries {
		for _, s := range e.Record.TechnologySkills {
			counts[s]++
		}
	}

	out := make([]SkillCount, 0, len(counts))
	for skill, c := range counts {
		out = append(out, SkillCount{Skill: skill, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FamilyDistribution tallies records per occupation family.
func FamilyDistribution(entries []corpus.Entry) map[string]int {
	out := map[string]int{}
	for _, e := range entries {
		out[e.Record.Family]++
	}
	return out
}

// CompletenessReport summarizes data quality for one run.
type CompletenessReport struct {
	Records int     `json:"records"`
	Flagged int     `json:"flagged"`
	Mean    float64 `json:"mean_completeness"`
	Min     float64 `json:"min_completeness"`
}

func Completeness(entries []corpus.Entry) CompletenessReport {
	rep := CompletenessReport{Records: len(entries), Min: 1}
	if len(entries) == 0 {
		rep.Min = 0
		return rep
	}
	sum := 0.0
	for _, e := range entries {
		score := e.Record.Completeness()
		sum += score
		if score < rep.Min {
			rep.Min = score
		}
		if len(e.Outcome.Reasons) > 0 {
			rep.Flagged++
		}
	}
	rep.Mean = sum / float64(len(entries))
	return rep
}
