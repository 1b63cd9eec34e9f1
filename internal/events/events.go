package events

import "time"

// Progress is published after each occupation code reaches a terminal state.
type Progress struct {
	Code       string    `json:"code"`
	Outcome    string    `json:"outcome"` // accepted | flagged | rejected | failed
	CorpusSize int       `json:"corpus_size"`
	At         time.Time `json:"at"`
}

func NewProgress(code, outcome string, corpusSize int) Progress {
	return Progress{
		Code:       code,
		Outcome:    outcome,
		CorpusSize: corpusSize,
		At:         time.Now().UTC(),
	}
}
