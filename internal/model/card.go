// internal/model/card.go
package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is assigned to cards created without an explicit category.
const DefaultCategory = "General"

// Card is a single study pair with its tracked answer statistics.
// The json tags define the persisted record shape; the storage layer
// reads and writes this field set verbatim.
type Card struct {
	SourceTerm     string     `json:"source_term"`
	TargetTerm     string     `json:"target_term"`
	Category       string     `json:"category"`
	Priority       bool       `json:"priority"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	LastReviewed   *time.Time `json:"last_reviewed"`
}

// NewCard creates a card from a term pair. Both terms are trimmed and must
// be non-empty; this is the one construction error that fails loudly.
func NewCard(sourceTerm, targetTerm string) (*Card, error) {
	sourceTerm = strings.TrimSpace(sourceTerm)
	targetTerm = strings.TrimSpace(targetTerm)
	if sourceTerm == "" || targetTerm == "" {
		return nil, fmt.Errorf("%w: source and target terms must be non-empty", ErrInvalidInput)
	}
	return &Card{
		SourceTerm: sourceTerm,
		TargetTerm: targetTerm,
		Category:   DefaultCategory,
	}, nil
}

// TotalAttempts returns the number of recorded answers.
func (c *Card) TotalAttempts() int {
	return c.CorrectCount + c.IncorrectCount
}

// SuccessRate returns the percentage of correct answers, 0.0 for a card
// that was never attempted.
func (c *Card) SuccessRate() float64 {
	total := c.TotalAttempts()
	if total == 0 {
		return 0.0
	}
	return float64(c.CorrectCount) / float64(total) * 100
}

// RegisterAnswer increments the matching counter and stamps LastReviewed.
// Counters never decrease.
func (c *Card) RegisterAnswer(correct bool) {
	if correct {
		c.CorrectCount++
	} else {
		c.IncorrectCount++
	}
	now := time.Now()
	c.LastReviewed = &now
}

// Normalize repairs a card decoded from a stored record: trims the terms,
// fills the default category, and clamps negative counters.
func (c *Card) Normalize() error {
	c.SourceTerm = strings.TrimSpace(c.SourceTerm)
	c.TargetTerm = strings.TrimSpace(c.TargetTerm)
	if c.SourceTerm == "" || c.TargetTerm == "" {
		return fmt.Errorf("%w: card record has empty term", ErrInvalidInput)
	}
	if strings.TrimSpace(c.Category) == "" {
		c.Category = DefaultCategory
	} else {
		c.Category = strings.TrimSpace(c.Category)
	}
	if c.CorrectCount < 0 {
		c.CorrectCount = 0
	}
	if c.IncorrectCount < 0 {
		c.IncorrectCount = 0
	}
	return nil
}

// CardResponse is the card list item DTO, including the derived statistics
// so clients never recompute them.
type CardResponse struct {
	Index          int        `json:"index"`
	SourceTerm     string     `json:"source_term"`
	TargetTerm     string     `json:"target_term"`
	Category       string     `json:"category"`
	Priority       bool       `json:"priority"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	TotalAttempts  int        `json:"total_attempts"`
	SuccessRate    float64    `json:"success_rate"`
	LastReviewed   *time.Time `json:"last_reviewed,omitempty"`
}

// NewCardResponse builds the response DTO for a card at the given position.
func NewCardResponse(index int, c *Card) *CardResponse {
	return &CardResponse{
		Index:          index,
		SourceTerm:     c.SourceTerm,
		TargetTerm:     c.TargetTerm,
		Category:       c.Category,
		Priority:       c.Priority,
		CorrectCount:   c.CorrectCount,
		IncorrectCount: c.IncorrectCount,
		TotalAttempts:  c.TotalAttempts(),
		SuccessRate:    c.SuccessRate(),
		LastReviewed:   c.LastReviewed,
	}
}

// ParseDiagnostic reports a malformed line skipped during text import.
type ParseDiagnostic struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// CardListFilter narrows a card listing. The zero value lists everything.
// An unknown level is ignored rather than rejected.
type CardListFilter struct {
	Category string
	Level    string
	Priority bool
}

// IsZero reports whether the filter would pass every card through.
func (f CardListFilter) IsZero() bool {
	return f.Category == "" && f.Level == "" && !f.Priority
}

// ImportCardsRequest is the bulk text import DTO.
type ImportCardsRequest struct {
	Text            string `json:"text" validate:"required"`
	DefaultCategory string `json:"default_category,omitempty"`
}

// ImportCardsResponse reports how many cards were imported and which lines
// were skipped.
type ImportCardsResponse struct {
	Count       int               `json:"count"`
	Diagnostics []ParseDiagnostic `json:"diagnostics,omitempty"`
}

// TogglePriorityResponse reports the new flag state after a toggle.
type TogglePriorityResponse struct {
	Index    int  `json:"index"`
	Priority bool `json:"priority"`
}
