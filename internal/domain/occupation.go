package domain

// OccupationRecord is one scraped occupation, keyed by its O*NET-SOC code
// (e.g. "15-1252.00"). List fields are ordered, deduplicated, and never
// contain empty strings.
type OccupationRecord struct {
	Code        string `json:"occupation_code"`
	Title       string `json:"title"`
	Family      string `json:"occupation_family"`
	Description string `json:"description"`

	TechnologySkills []string       `json:"technology_skills"`
	EducationLevel   EducationLevel `json:"education_level"`
	// SalaryMedian is nil when the page reported no salary; zero is a
	// legitimate reported value and must not be used as the sentinel.
	SalaryMedian *float64 `json:"salary_median"`

	WorkActivities []string `json:"work_activities"`
	WorkContext    []string `json:"work_context"`
	KnowledgeAreas []string `json:"knowledge_areas"`
	Abilities      []string `json:"abilities"`
	WorkStyles     []string `json:"work_styles"`
	Tasks          []string `json:"tasks"`
	ToolsUsed      []string `json:"tools_used"`
	WorkValues     []string `json:"work_values"`

	// JobGrowth and URL ride along for export but do not count toward
	// completeness.
	JobGrowth string `json:"job_growth,omitempty"`
	URL       string `json:"url,omitempty"`
}

// TrackedFields is the number of fields that participate in completeness
// scoring.
const TrackedFields = 15

// Completeness returns the fraction of tracked fields that are populated,
// computed from the current field values on every call. An education level
// of Unknown and a nil salary both count as missing.
func (r *OccupationRecord) Completeness() float64 {
	filled := 0
	for _, ok := range []bool{
		r.Code != "",
		r.Title != "",
		r.Family != "",
		r.Description != "",
		len(r.TechnologySkills) > 0,
		r.EducationLevel.Known(),
		r.SalaryMedian != nil,
		len(r.WorkActivities) > 0,
		len(r.WorkContext) > 0,
		len(r.KnowledgeAreas) > 0,
		len(r.Abilities) > 0,
		len(r.WorkStyles) > 0,
		len(r.Tasks) > 0,
		len(r.ToolsUsed) > 0,
		len(r.WorkValues) > 0,
	} {
		if ok {
			filled++
		}
	}
	return float64(filled) / float64(TrackedFields)
}
