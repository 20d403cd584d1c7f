// internal/model/collection.go
package model

import (
	"math/rand"
	"sort"
	"strings"
)

// Difficulty level bands derived from success rate and attempt count.
const (
	LevelDifficult = "difficult"
	LevelMedium    = "medium"
	LevelEasy      = "easy"
	LevelUnstudied = "unstudied"
)

// DefaultDifficultyThreshold is the success-rate cutoff below which an
// attempted card counts as difficult.
const DefaultDifficultyThreshold = 50.0

// Collection is an ordered sequence of cards. Insertion order is the
// canonical display order; positions are contiguous 0..n-1. Filter and
// sample operations return slices of shared references into the collection,
// never copies, so registering an answer on a filtered card updates the
// original.
type Collection struct {
	cards []*Card
}

func NewCollection() *Collection {
	return &Collection{}
}

// NewCollectionFromCards builds a collection that takes ownership of the
// given cards in order.
func NewCollectionFromCards(cards []*Card) *Collection {
	c := NewCollection()
	for _, card := range cards {
		c.Add(card)
	}
	return c
}

// Add appends a card to the collection.
func (c *Collection) Add(card *Card) {
	c.cards = append(c.cards, card)
}

// Remove deletes the card at index, shifting subsequent positions down.
// An out-of-range index is a no-op; callers that need failure signaling
// must pre-check with Len or Get.
func (c *Collection) Remove(index int) {
	if index < 0 || index >= len(c.cards) {
		return
	}
	c.cards = append(c.cards[:index], c.cards[index+1:]...)
}

// Get returns the card at index, or false when the index is out of range.
func (c *Collection) Get(index int) (*Card, bool) {
	if index < 0 || index >= len(c.cards) {
		return nil, false
	}
	return c.cards[index], true
}

// Len returns the number of cards.
func (c *Collection) Len() int {
	return len(c.cards)
}

// Cards returns the underlying ordered card slice. The slice header is
// shared; callers must not reorder it.
func (c *Collection) Cards() []*Card {
	return c.cards
}

// Categories returns the distinct category values, lexicographically sorted.
func (c *Collection) Categories() []string {
	seen := make(map[string]struct{})
	for _, card := range c.cards {
		seen[card.Category] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// FilterByCategory returns the cards whose category matches exactly
// (case-sensitive).
func (c *Collection) FilterByCategory(category string) []*Card {
	return c.FilterByCategories([]string{category})
}

// FilterByCategories returns the cards belonging to any of the given
// categories.
func (c *Collection) FilterByCategories(categories []string) []*Card {
	wanted := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		wanted[category] = struct{}{}
	}
	var result []*Card
	for _, card := range c.cards {
		if _, ok := wanted[card.Category]; ok {
			result = append(result, card)
		}
	}
	return result
}

// Search returns the cards whose source or target term contains the given
// term, case-insensitively.
func (c *Collection) Search(term string) []*Card {
	term = strings.ToLower(term)
	var result []*Card
	for _, card := range c.cards {
		if strings.Contains(strings.ToLower(card.SourceTerm), term) ||
			strings.Contains(strings.ToLower(card.TargetTerm), term) {
			result = append(result, card)
		}
	}
	return result
}

// FilterByPriority returns the cards flagged as priority.
func (c *Collection) FilterByPriority() []*Card {
	var result []*Card
	for _, card := range c.cards {
		if card.Priority {
			result = append(result, card)
		}
	}
	return result
}

// FilterByDifficulty returns attempted cards whose success rate is below
// threshold. Cards never attempted are excluded: difficult requires
// evidence, not absence of evidence.
func (c *Collection) FilterByDifficulty(threshold float64) []*Card {
	var result []*Card
	for _, card := range c.cards {
		if card.TotalAttempts() > 0 && card.SuccessRate() < threshold {
			result = append(result, card)
		}
	}
	return result
}

// FilterByLevel returns the cards in the given difficulty band. Any level
// other than the four known bands returns all cards unfiltered.
func (c *Collection) FilterByLevel(level string) []*Card {
	var result []*Card
	for _, card := range c.cards {
		attempts := card.TotalAttempts()
		rate := card.SuccessRate()
		switch level {
		case LevelDifficult:
			if attempts > 0 && rate < 50 {
				result = append(result, card)
			}
		case LevelMedium:
			if attempts > 0 && rate >= 50 && rate < 80 {
				result = append(result, card)
			}
		case LevelEasy:
			if attempts > 0 && rate >= 80 {
				result = append(result, card)
			}
		case LevelUnstudied:
			if attempts == 0 {
				result = append(result, card)
			}
		default:
			result = append(result, card)
		}
	}
	return result
}

// RandomSample returns a uniformly shuffled copy of the card list,
// optionally restricted to the given categories first. A positive count
// truncates the shuffle to its first count entries. The rand source is
// explicit so tests can seed it.
func (c *Collection) RandomSample(count int, categories []string, rng *rand.Rand) []*Card {
	var cards []*Card
	if len(categories) > 0 {
		cards = c.FilterByCategories(categories)
	} else {
		cards = make([]*Card, len(c.cards))
		copy(cards, c.cards)
	}
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	if count > 0 && count < len(cards) {
		cards = cards[:count]
	}
	return cards
}

// GeneralStatistics aggregates over the whole collection. The mean success
// rate averages only cards with at least one attempt; with none, it is 0.0.
func (c *Collection) GeneralStatistics() *GeneralStatistics {
	stats := &GeneralStatistics{}
	if len(c.cards) == 0 {
		return stats
	}
	stats.TotalCards = len(c.cards)
	stats.CategoryCount = len(c.Categories())

	var rateSum float64
	var attempted int
	for _, card := range c.cards {
		if card.Priority {
			stats.WithPriorityCount++
		}
		stats.TotalAttemptsSum += card.TotalAttempts()
		if card.TotalAttempts() > 0 {
			attempted++
			rateSum += card.SuccessRate()
		}
	}
	if attempted > 0 {
		stats.MeanSuccessRate = rateSum / float64(attempted)
	}
	return stats
}

// StatisticsByCategory aggregates per category, ordered by category name.
func (c *Collection) StatisticsByCategory() []*CategoryStatistics {
	result := make([]*CategoryStatistics, 0)
	for _, category := range c.Categories() {
		cards := c.FilterByCategory(category)
		stats := &CategoryStatistics{
			Category:   category,
			TotalCards: len(cards),
		}
		var rateSum float64
		for _, card := range cards {
			if card.Priority {
				stats.WithPriorityCount++
			}
			if card.TotalAttempts() == 0 {
				stats.UnstudiedCount++
				continue
			}
			stats.StudiedCount++
			stats.TotalAttemptsSum += card.TotalAttempts()
			stats.CorrectTotal += card.CorrectCount
			stats.IncorrectTotal += card.IncorrectCount
			rateSum += card.SuccessRate()
		}
		if stats.StudiedCount > 0 {
			stats.MeanSuccessRate = rateSum / float64(stats.StudiedCount)
		}
		result = append(result, stats)
	}
	return result
}

// SortByDifficulty orders the collection in place by success rate.
// Unattempted cards sort as if their rate were 100, so in ascending order
// they sink to the end. The sort is stable for deterministic output on ties.
func (c *Collection) SortByDifficulty(ascending bool) {
	key := func(card *Card) float64 {
		if card.TotalAttempts() == 0 {
			return 100
		}
		return card.SuccessRate()
	}
	sort.SliceStable(c.cards, func(i, j int) bool {
		if ascending {
			return key(c.cards[i]) < key(c.cards[j])
		}
		return key(c.cards[i]) > key(c.cards[j])
	})
}
