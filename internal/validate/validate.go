// Package validate decides whether an assembled record enters the corpus.
package validate

import (
	"fmt"

	"jobmarket-engine/internal/domain"
)

type Status int

const (
	// Accepted records enter the corpus as-is.
	Accepted Status = iota
	// Flagged records enter the corpus carrying their reasons; consumers
	// may exclude them.
	Flagged
	// Rejected records have unusable identity and stay out.
	Rejected
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Flagged:
		return "flagged"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

type Outcome struct {
	Status       Status
	Reasons      []string
	Completeness float64
}

// Policy holds the configurable validation thresholds.
type Policy struct {
	// CompletenessThreshold flags records whose score falls below it.
	// 0.5 is the working default upstream of here; zero disables flagging.
	CompletenessThreshold float64
}

// Validate checks identity and completeness. A record without a code or
// title is Rejected; a thin-but-identified record is Flagged and still
// Accepted into the corpus.
func (p Policy) Validate(rec *domain.OccupationRecord) Outcome {
	var reasons []string
	if rec.Code == "" {
		reasons = append(reasons, "missing code")
	}
	if rec.Title == "" {
		reasons = append(reasons, "missing title")
	}
	score := rec.Completeness()
	if len(reasons) > 0 {
		return Outcome{Status: Rejected, Reasons: reasons, Completeness: score}
	}

	if p.CompletenessThreshold > 0 && score < p.CompletenessThreshold {
		reasons = append(reasons, fmt.Sprintf(
			"completeness %.2f below threshold %.2f", score, p.CompletenessThreshold))
		return Outcome{Status: Flagged, Reasons: reasons, Completeness: score}
	}

	return Outcome{Status: Accepted, Completeness: score}
}
