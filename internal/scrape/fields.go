package scrape

// Logical field keys the resolver knows how to locate. Probe tables are
// keyed by these, so site packages and extractors agree on names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTechSkills  = "technology_skills"
	FieldEducation   = "education"
	FieldSalary      = "salary"
	FieldJobGrowth   = "job_growth"
	FieldActivities  = "work_activities"
	FieldContext     = "work_context"
	FieldKnowledge   = "knowledge_areas"
	FieldAbilities   = "abilities"
	FieldStyles      = "work_styles"
	FieldTasks       = "tasks"
	FieldTools       = "tools_used"
	FieldValues      = "work_values"
)
