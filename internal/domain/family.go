package domain

import (
	"strconv"
	"strings"
)

// FamilyUnclassified is used when a code's major group is not in the SOC
// family table. A record's family is never left blank.
const FamilyUnclassified = "Unclassified"

// occupationFamilies maps the two-digit SOC major group to its family name.
var occupationFamilies = map[int]string{
	11: "Management Occupations",
	13: "Business and Financial Operations",
	15: "Computer and Mathematical Occupations",
	17: "Architecture and Engineering",
	19: "Life, Physical, and Social Science",
	21: "Community and Social Service",
	23: "Legal Occupations",
	25: "Education, Training, and Library",
	27: "Arts, Design, Entertainment, Sports, and Media",
	29: "Healthcare Practitioners and Technical",
	31: "Healthcare Support",
	33: "Protective Service",
	35: "Food Preparation and Serving Related",
	37: "Building and Grounds Cleaning and Maintenance",
	39: "Personal Care and Service",
	41: "Sales and Related",
	43: "Office and Administrative Support",
	45: "Farming, Fishing, and Forestry",
	47: "Construction and Extraction",
	49: "Installation, Maintenance, and Repair",
	51: "Production",
	53: "Transportation and Material Moving",
}

// Families returns the family IDs in ascending order with their names.
func Families() []struct {
	ID   int
	Name string
} {
	out := make([]struct {
		ID   int
		Name string
	}, 0, len(occupationFamilies))
	for id := 11; id <= 53; id += 2 {
		if name, ok := occupationFamilies[id]; ok {
			out = append(out, struct {
				ID   int
				Name string
			}{id, name})
		}
	}
	return out
}

// FamilyForCode derives the occupation family from a code like "15-1252.00".
func FamilyForCode(code string) string {
	prefix, _, ok := strings.Cut(code, "-")
	if !ok {
		return FamilyUnclassified
	}
	id, err := strconv.Atoi(prefix)
	if err != nil {
		return FamilyUnclassified
	}
	if name, ok := occupationFamilies[id]; ok {
		return name
	}
	return FamilyUnclassified
}
