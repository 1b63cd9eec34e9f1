package domain

// EducationLevel is the closed set of education labels a page can report.
type EducationLevel string

const (
	EducationUnknown     EducationLevel = "unknown"
	EducationHighSchool  EducationLevel = "high school diploma"
	EducationCertificate EducationLevel = "postsecondary certificate"
	EducationAssociate   EducationLevel = "associate's degree"
	EducationBachelor    EducationLevel = "bachelor's degree"
	EducationMaster      EducationLevel = "master's degree"
	EducationDoctoral    EducationLevel = "doctoral degree"
)

// Known reports whether the level carries information; Unknown and the empty
// string both mean "not reported".
func (e EducationLevel) Known() bool {
	return e != "" && e != EducationUnknown
}
