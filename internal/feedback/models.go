package feedback

import "time"

// Field limits enforced on every submission.
const (
	MaxNameLength     = 60
	MaxFeedbackLength = 1000
)

// Record is a single persisted feedback submission. Records are created once
// and never modified, so CreatedAt and UpdatedAt are equal.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Feedback  string    `json:"feedback"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Submission is the caller-supplied part of a record.
type Submission struct {
	Name     string `json:"name" validate:"required,max=60"`
	Feedback string `json:"feedback" validate:"required,max=1000"`
}
