// Package export serializes a finished corpus. It consumes the dataset the
// pipeline produced and never reaches back into scraping.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"jobmarket-engine/internal/corpus"
)

var csvHeader = []string{
	"code", "title", "family", "description",
	"technology_skills", "education_level", "salary_median",
	"work_activities", "work_context", "knowledge_areas", "abilities",
	"work_styles", "tasks", "tools_used", "work_values",
	"job_growth", "url", "completeness", "flags",
}

// WriteCSV emits one row per record. List fields are semicolon-joined;
// a missing salary stays an empty cell, never a zero.
func WriteCSV(w io.Writer, res corpus.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range res.Records {
		rec := e.Record
		salary := ""
		if rec.SalaryMedian != nil {
			salary = strconv.FormatFloat(*rec.SalaryMedian, 'f', -1, 64)
		}
		row := []string{
			rec.Code,
			rec.Title,
			rec.Family,
			rec.Description,
			strings.Join(rec.TechnologySkills, "; "),
			string(rec.EducationLevel),
			salary,
			strings.Join(rec.WorkActivities, "; "),
			strings.Join(rec.WorkContext, "; "),
			strings.Join(rec.KnowledgeAreas, "; "),
			strings.Join(rec.Abilities, "; "),
			strings.Join(rec.WorkStyles, "; "),
			strings.Join(rec.Tasks, "; "),
			strings.Join(rec.ToolsUsed, "; "),
			strings.Join(rec.WorkValues, "; "),
			rec.JobGrowth,
			rec.URL,
			strconv.FormatFloat(rec.Completeness(), 'f', 2, 64),
			strings.Join(e.Outcome.Reasons, "; "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonRecord struct {
	Record       any      `json:"record"`
	Completeness float64  `json:"completeness_score"`
	Flags        []string `json:"flags,omitempty"`
}

type jsonDocument struct {
	Occupations []jsonRecord     `json:"occupations"`
	Failures    []corpus.Failure `json:"failures"`
}

// WriteJSON emits the corpus plus the failure ledger as one document.
func WriteJSON(w io.Writer, res corpus.Result) error {
	doc := jsonDocument{Failures: res.Ledger}
	for _, e := range res.Records {
		doc.Occupations = append(doc.Occupations, jsonRecord{
			Record:       e.Record,
			Completeness: e.Record.Completeness(),
			Flags:        e.Outcome.Reasons,
		})
	}
	if doc.Failures == nil {
		doc.Failures = []corpus.Failure{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
