// internal/model/study.go
package model

import "github.com/google/uuid"

// Quiz direction for a study session.
const (
	ModeSourceToTarget = "source-target"
	ModeTargetToSource = "target-source"
)

// StartSessionRequest is the study session creation DTO.
type StartSessionRequest struct {
	Mode          string   `json:"mode,omitempty" validate:"omitempty,oneof=source-target target-source"`
	Count         int      `json:"count,omitempty" validate:"omitempty,min=1"`
	Categories    []string `json:"categories,omitempty"`
	DifficultOnly bool     `json:"difficult_only,omitempty"`
}

// StartSessionResponse returns the new session handle and its deck size.
type StartSessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Mode      string    `json:"mode"`
	Total     int       `json:"total"`
}

// StudyCardResponse is the current card of a session, oriented by the
// session mode. When the session is exhausted only Completed, Correct and
// Total are meaningful.
type StudyCardResponse struct {
	Completed bool   `json:"completed"`
	Question  string `json:"question,omitempty"`
	Answer    string `json:"answer,omitempty"`
	Priority  bool   `json:"priority"`
	Index     int    `json:"index"`
	Total     int    `json:"total"`
	Correct   int    `json:"correct"`
}

// SubmitAnswerRequest carries the user's self-graded result. A pointer so
// that an absent field fails validation instead of defaulting to false.
type SubmitAnswerRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// SubmitAnswerResponse reports session progress after an answer.
type SubmitAnswerResponse struct {
	Completed bool `json:"completed"`
	Index     int  `json:"index"`
	Total     int  `json:"total"`
	Correct   int  `json:"correct"`
}
