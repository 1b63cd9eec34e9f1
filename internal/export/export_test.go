package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"jobmarket-engine/internal/corpus"
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/validate"
)

func sampleResult() corpus.Result {
	salary := 130160.0
	full := domain.OccupationRecord{
		Code:             "15-1252.00",
		Title:            "Software Developers",
		Family:           "Computer and Mathematical Occupations",
		Description:      "Develop software.",
		TechnologySkills: []string{"Python", "SQL"},
		EducationLevel:   domain.EducationBachelor,
		SalaryMedian:     &salary,
		Tasks:            []string{"Analyze needs", "Design systems"},
		URL:              "https://www.onetonline.org/link/summary/15-1252.00",
	}
	thin := domain.OccupationRecord{
		Code:   "15-2011.00",
		Title:  "Actuaries",
		Family: "Computer and Mathematical Occupations",
	}
	policy := validate.Policy{CompletenessThreshold: 0.5}
	return corpus.Result{
		Records: []corpus.Entry{
			{Record: full, Outcome: policy.Validate(&full)},
			{Record: thin, Outcome: policy.Validate(&thin)},
		},
		Ledger: []corpus.Failure{{Code: "11-1011.00", Reason: "status 404", Attempts: 1}},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 records
	require.Equal(t, csvHeader, rows[0])

	full := rows[1]
	require.Equal(t, "15-1252.00", full[0])
	require.Equal(t, "Python; SQL", full[4])
	require.Equal(t, "bachelor's degree", full[5])
	require.Equal(t, "130160", full[6])
	require.Equal(t, "Analyze needs; Design systems", full[12])
	require.Empty(t, full[18]) // no flags

	thin := rows[2]
	require.Equal(t, "15-2011.00", thin[0])
	require.Empty(t, thin[6]) // nil salary is an empty cell
	require.Equal(t, "0.20", thin[17])
	require.Contains(t, thin[18], "below threshold")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var doc struct {
		Occupations []struct {
			Record struct {
				Code         string   `json:"occupation_code"`
				Title        string   `json:"title"`
				SalaryMedian *float64 `json:"salary_median"`
			} `json:"record"`
			Completeness float64  `json:"completeness_score"`
			Flags        []string `json:"flags"`
		} `json:"occupations"`
		Failures []corpus.Failure `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	require.Len(t, doc.Occupations, 2)
	require.Equal(t, "15-1252.00", doc.Occupations[0].Record.Code)
	require.NotNil(t, doc.Occupations[0].Record.SalaryMedian)
	require.Empty(t, doc.Occupations[0].Flags)

	require.Nil(t, doc.Occupations[1].Record.SalaryMedian)
	require.InDelta(t, 0.2, doc.Occupations[1].Completeness, 1e-9)
	require.NotEmpty(t, doc.Occupations[1].Flags)

	require.Len(t, doc.Failures, 1)
	require.Equal(t, "11-1011.00", doc.Failures[0].Code)
}

func TestWriteJSONEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, corpus.Result{}))

	// failures serializes as [] rather than null
	require.Contains(t, buf.String(), `"failures": []`)
	require.False(t, strings.Contains(buf.String(), `"failures": null`))
}
