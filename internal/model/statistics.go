// internal/model/statistics.go
package model

// GeneralStatistics is the collection-wide aggregate DTO. All fields are
// zero on an empty collection.
type GeneralStatistics struct {
	TotalCards        int     `json:"total_cards"`
	WithPriorityCount int     `json:"with_priority_count"`
	TotalAttemptsSum  int     `json:"total_attempts_sum"`
	MeanSuccessRate   float64 `json:"mean_success_rate"`
	CategoryCount     int     `json:"category_count"`
}

// CategoryStatistics is the per-category aggregate DTO. Attempt and
// correctness sums cover attempted cards only.
type CategoryStatistics struct {
	Category          string  `json:"category"`
	TotalCards        int     `json:"total_cards"`
	WithPriorityCount int     `json:"with_priority_count"`
	StudiedCount      int     `json:"studied_count"`
	UnstudiedCount    int     `json:"unstudied_count"`
	TotalAttemptsSum  int     `json:"total_attempts_sum"`
	CorrectTotal      int     `json:"correct_total"`
	IncorrectTotal    int     `json:"incorrect_total"`
	MeanSuccessRate   float64 `json:"mean_success_rate"`
}
