package extract

import (
	"regexp"
	"strings"
)

// Vocabulary is a closed set of known technology terms. Free-text mentions
// are canonicalized to the vocabulary's casing ("python" -> "Python").
// Matching is word-boundary aware so "R" doesn't match every word with an r.
type Vocabulary struct {
	terms    []string
	patterns []*regexp.Regexp
}

func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{}
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		v.terms = append(v.terms, t)
		v.patterns = append(v.patterns, termPattern(t))
	}
	return v
}

func termPattern(term string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(term)
	pat := `(?i)\b` + quoted
	// "C++" ends on a non-word rune; \b there would never match.
	if isWordChar(term[len(term)-1]) {
		pat += `\b`
	}
	return regexp.MustCompile(pat)
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Match returns the canonical terms mentioned in text, in vocabulary order.
func (v *Vocabulary) Match(text string) []string {
	var out []string
	for i, p := range v.patterns {
		if p.MatchString(text) {
			out = append(out, v.terms[i])
		}
	}
	return out
}

// Terms returns the canonical term list in vocabulary order.
func (v *Vocabulary) Terms() []string { return v.terms }

// DefaultTechTerms is the curated technology keyword set. Callers may pass
// their own list to NewVocabulary; nothing here is consulted implicitly.
var DefaultTechTerms = []string{
	// languages
	"Python", "Java", "JavaScript", "C++", "C#", "R", "MATLAB", "Go", "Rust", "Swift",
	"Kotlin", "Scala", "PHP", "Ruby", "Perl", "TypeScript", "Dart",
	// web
	"HTML", "CSS", "React", "Angular", "Vue.js", "Node.js", "Django", "Flask",
	"Spring", "Express.js", "Laravel", "ASP.NET", "jQuery", "Bootstrap",
	// data science / ML
	"TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "NumPy", "SciPy",
	"Apache Spark", "Hadoop", "Keras", "OpenCV", "NLTK", "spaCy",
	// databases
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch",
	"Oracle", "SQLite", "Cassandra", "Neo4j",
	// cloud / devops
	"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Terraform",
	"Jenkins", "GitLab CI", "GitHub Actions", "Ansible", "Chef", "Puppet",
	// tools and platforms
	"Git", "Linux", "Tableau", "Power BI", "Excel",
	"Jupyter", "Apache Kafka", "RabbitMQ", "Apache Airflow",
	// concepts
	"Machine Learning", "Deep Learning", "Data Science", "Big Data",
	"Cloud Computing", "DevOps", "Agile", "Scrum", "Microservices",
	"REST API", "GraphQL", "Blockchain", "Cybersecurity",
}
