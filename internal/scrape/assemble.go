// Package scrape assembles occupation records out of fetched documents.
package scrape

import (
	"jobmarket-engine/internal/domain"
	"jobmarket-engine/internal/scrape/extract"
	"jobmarket-engine/internal/scrape/probe"

	"github.com/PuerkitoBio/goquery"
)

// Assembler runs every field extractor against a fetched document and merges
// the results into one record. Extractors are independent and the document
// is already in memory, so assembly never touches the network.
type Assembler struct {
	resolver *probe.Resolver
	vocab    *extract.Vocabulary
}

func NewAssembler(resolver *probe.Resolver, vocab *extract.Vocabulary) *Assembler {
	return &Assembler{resolver: resolver, vocab: vocab}
}

// Assemble builds the record for code from doc. Fields whose probes never
// match stay at their canonical empty value; completeness is derived, not
// stored, so it can never go stale.
func (a *Assembler) Assemble(code string, doc *goquery.Document) domain.OccupationRecord {
	rec := domain.OccupationRecord{
		Code:   code,
		Family: domain.FamilyForCode(code),
	}

	resolve := func(field string) (probe.Result, bool) {
		return a.resolver.Resolve(doc, field)
	}

	rec.Title = firstLine(resolve(FieldTitle))
	rec.Description = extract.Scalar(resolve(FieldDescription))
	rec.TechnologySkills = a.techSkills(doc)
	rec.EducationLevel = extract.Education(resolve(FieldEducation))
	rec.SalaryMedian = extract.Salary(resolve(FieldSalary))
	rec.JobGrowth = extract.Scalar(resolve(FieldJobGrowth))
	rec.WorkActivities = extract.List(resolve(FieldActivities))
	rec.WorkContext = extract.List(resolve(FieldContext))
	rec.KnowledgeAreas = extract.List(resolve(FieldKnowledge))
	rec.Abilities = extract.List(resolve(FieldAbilities))
	rec.WorkStyles = extract.List(resolve(FieldStyles))
	rec.Tasks = extract.List(resolve(FieldTasks))
	rec.ToolsUsed = extract.List(resolve(FieldTools))
	rec.WorkValues = extract.List(resolve(FieldValues))

	return rec
}

// techSkills canonicalizes the technology section against the vocabulary.
func (a *Assembler) techSkills(doc *goquery.Document) []string {
	res, ok := a.resolver.Resolve(doc, FieldTechSkills)
	return extract.TechSkills(res, ok, a.vocab)
}

// firstLine takes the first matched node's text; section headings often
// repeat the title below it, and the first occurrence is the canonical one.
func firstLine(res probe.Result, ok bool) string {
	if !ok {
		return ""
	}
	items := res.Text()
	if len(items) == 0 {
		return ""
	}
	return items[0]
}
