package onet

import (
	"jobmarket-engine/internal/scrape"
	"jobmarket-engine/internal/scrape/probe"
)

// DefaultProbes is the ranked probe table for the summary-page layouts seen
// so far. First entry per field is the current layout; later entries cover
// older markup so a partial site redesign degrades to "field absent" instead
// of breaking the run. Callers get a fresh copy; override freely.
func DefaultProbes() map[string][]probe.Probe {
	return map[string][]probe.Probe{
		scrape.FieldTitle: {
			{Selector: "h1.main span.title"},
			{Selector: "h1.main"},
			{Selector: "h1"},
		},
		scrape.FieldDescription: {
			{Selector: "div.report-description p"},
			{Selector: "#content > p.report"},
			{Selector: "p.lead"},
		},
		scrape.FieldTechSkills: {
			{Selector: "div#TechnologySkills ul li b"},
			{Selector: "div#TechnologySkills ul li"},
			{Selector: "section[data-section=technology] li"},
			{Selector: "table#technology-skills td"},
		},
		scrape.FieldEducation: {
			{Selector: "div#Education ul li"},
			{Selector: "div#JobZone dd"},
			{Selector: "section[data-section=education]"},
		},
		scrape.FieldSalary: {
			{Selector: "div#WagesEmployment dd"},
			{Selector: "div#WagesEmployment"},
			{Selector: "section[data-section=wages]"},
		},
		scrape.FieldJobGrowth: {
			{Selector: "div#WagesEmployment dd.outlook"},
			{Selector: "section[data-section=outlook]"},
		},
		scrape.FieldActivities: {
			{Selector: "div#WorkActivities ul li"},
			{Selector: "section[data-section=work_activities] li"},
			{Selector: "table#work-activities td"},
		},
		scrape.FieldContext: {
			{Selector: "div#WorkContext ul li"},
			{Selector: "section[data-section=work_context] li"},
		},
		scrape.FieldKnowledge: {
			{Selector: "div#Knowledge ul li b"},
			{Selector: "div#Knowledge ul li"},
			{Selector: "section[data-section=knowledge] li"},
		},
		scrape.FieldAbilities: {
			{Selector: "div#Abilities ul li b"},
			{Selector: "div#Abilities ul li"},
			{Selector: "section[data-section=abilities] li"},
		},
		scrape.FieldStyles: {
			{Selector: "div#WorkStyles ul li b"},
			{Selector: "div#WorkStyles ul li"},
			{Selector: "section[data-section=work_styles] li"},
		},
		scrape.FieldTasks: {
			{Selector: "div#Tasks ul li"},
			{Selector: "section[data-section=tasks] li"},
			{Selector: "table#tasks td"},
		},
		scrape.FieldTools: {
			{Selector: "div#ToolsUsed ul li b"},
			{Selector: "div#ToolsUsed ul li"},
			{Selector: "section[data-section=tools_used] li"},
		},
		scrape.FieldValues: {
			{Selector: "div#WorkValues ul li b"},
			{Selector: "div#WorkValues ul li"},
			{Selector: "section[data-section=work_values] li"},
		},
	}
}

// indexProbes locate occupation links on a family index page, newest layout
// first.
var indexProbes = []probe.Probe{
	{Selector: `td.report2 > a[href*="/link/summary/"]`},
	{Selector: `a[href*="/link/summary/"]`},
	{Selector: `a[href*="/summary/"]`},
}
