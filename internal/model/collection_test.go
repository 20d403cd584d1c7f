// internal/model/collection_test.go
package model

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCard(t *testing.T, source, target, category string, correct, incorrect int) *Card {
	t.Helper()
	card, err := NewCard(source, target)
	require.NoError(t, err)
	if category != "" {
		card.Category = category
	}
	card.CorrectCount = correct
	card.IncorrectCount = incorrect
	return card
}

func TestCollection_AddRemoveGet(t *testing.T) {
	c := NewCollection()
	first := mustCard(t, "eins", "one", "", 0, 0)
	second := mustCard(t, "zwei", "two", "", 0, 0)
	c.Add(first)
	c.Add(second)
	require.Equal(t, 2, c.Len())

	got, ok := c.Get(0)
	require.True(t, ok)
	assert.Same(t, first, got)

	_, ok = c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(-1)
	assert.False(t, ok)

	// Out-of-range removal is a no-op.
	c.Remove(5)
	c.Remove(-1)
	assert.Equal(t, 2, c.Len())

	// Removal shifts subsequent positions down.
	c.Remove(0)
	require.Equal(t, 1, c.Len())
	got, ok = c.Get(0)
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestCollection_Categories(t *testing.T) {
	c := NewCollection()
	c.Add(mustCard(t, "gehen", "to go", "Verbs", 0, 0))
	c.Add(mustCard(t, "Haus", "house", "Nouns", 0, 0))
	c.Add(mustCard(t, "laufen", "to run", "Verbs", 0, 0))

	assert.Equal(t, []string{"Nouns", "Verbs"}, c.Categories())
}

func TestCollection_FilterByCategories(t *testing.T) {
	c := NewCollection()
	verb := mustCard(t, "gehen", "to go", "Verbs", 0, 0)
	noun := mustCard(t, "Haus", "house", "Nouns", 0, 0)
	c.Add(verb)
	c.Add(noun)

	assert.Equal(t, []*Card{verb}, c.FilterByCategory("Verbs"))
	assert.Empty(t, c.FilterByCategory("verbs"), "matching is case-sensitive")
	assert.Len(t, c.FilterByCategories([]string{"Verbs", "Nouns"}), 2)
	assert.Empty(t, c.FilterByCategories(nil))
}

func TestCollection_Search(t *testing.T) {
	c := NewCollection()
	c.Add(mustCard(t, "Nachmittag", "afternoon", "", 0, 0))
	c.Add(mustCard(t, "Haus", "house", "", 0, 0))

	assert.Len(t, c.Search("HAUS"), 1, "case-insensitive on the source term")
	assert.Len(t, c.Search("noon"), 1, "substring on the target term")
	assert.Len(t, c.Search("a"), 2)
	assert.Empty(t, c.Search("zzz"))
}

func TestCollection_Search_ReturnsSharedReferences(t *testing.T) {
	c := NewCollection()
	c.Add(mustCard(t, "Haus", "house", "", 0, 0))

	matches := c.Search("haus")
	require.Len(t, matches, 1)
	matches[0].RegisterAnswer(true)

	original, ok := c.Get(0)
	require.True(t, ok)
	assert.Equal(t, 1, original.CorrectCount, "filtered results alias the collection's cards")
}

func TestCollection_FilterByDifficulty(t *testing.T) {
	c := NewCollection()
	difficult := mustCard(t, "schwer", "hard", "", 1, 3) // 25%
	easy := mustCard(t, "leicht", "easy", "", 9, 1)      // 90%
	unstudied := mustCard(t, "neu", "new", "", 0, 0)
	c.Add(difficult)
	c.Add(easy)
	c.Add(unstudied)

	got := c.FilterByDifficulty(DefaultDifficultyThreshold)
	assert.Equal(t, []*Card{difficult}, got, "unattempted cards are excluded even though their rate is 0.0")
}

func TestCollection_FilterByLevel(t *testing.T) {
	difficult := mustCard(t, "a", "1", "", 1, 3)  // 25%
	medium := mustCard(t, "b", "2", "", 3, 2)     // 60%
	easy := mustCard(t, "c", "3", "", 8, 2)       // 80%
	unstudied := mustCard(t, "d", "4", "", 0, 0)

	c := NewCollection()
	c.Add(difficult)
	c.Add(medium)
	c.Add(easy)
	c.Add(unstudied)

	tests := []struct {
		level string
		want  []*Card
	}{
		{LevelDifficult, []*Card{difficult}},
		{LevelMedium, []*Card{medium}},
		{LevelEasy, []*Card{easy}},
		{LevelUnstudied, []*Card{unstudied}},
		{"whatever", []*Card{difficult, medium, easy, unstudied}},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, c.FilterByLevel(tt.level))
		})
	}
}

func TestCollection_GeneralStatistics(t *testing.T) {
	c := NewCollection()
	stats := c.GeneralStatistics()
	assert.Zero(t, stats.TotalCards)
	assert.Zero(t, stats.WithPriorityCount)
	assert.Zero(t, stats.TotalAttemptsSum)
	assert.Zero(t, stats.MeanSuccessRate)
	assert.Zero(t, stats.CategoryCount)

	card := mustCard(t, "Haus", "house", "", 3, 1)
	card.Priority = true
	c.Add(card)
	c.Add(mustCard(t, "neu", "new", "", 0, 0))

	stats = c.GeneralStatistics()
	assert.Equal(t, 2, stats.TotalCards)
	assert.Equal(t, 1, stats.WithPriorityCount)
	assert.Equal(t, 4, stats.TotalAttemptsSum)
	assert.InDelta(t, 75.0, stats.MeanSuccessRate, 1e-9, "mean over attempted cards only")
	assert.Equal(t, 1, stats.CategoryCount)
}

func TestCollection_StatisticsByCategory(t *testing.T) {
	c := NewCollection()
	studied := mustCard(t, "gehen", "to go", "Verbs", 6, 2) // 75%
	studied.Priority = true
	c.Add(studied)
	c.Add(mustCard(t, "laufen", "to run", "Verbs", 0, 0))
	c.Add(mustCard(t, "Haus", "house", "Nouns", 1, 1)) // 50%

	stats := c.StatisticsByCategory()
	require.Len(t, stats, 2)

	nouns := stats[0]
	assert.Equal(t, "Nouns", nouns.Category)
	assert.Equal(t, 1, nouns.TotalCards)
	assert.Equal(t, 1, nouns.StudiedCount)
	assert.Equal(t, 0, nouns.UnstudiedCount)
	assert.Equal(t, 1, nouns.CorrectTotal)
	assert.Equal(t, 1, nouns.IncorrectTotal)
	assert.InDelta(t, 50.0, nouns.MeanSuccessRate, 1e-9)

	verbs := stats[1]
	assert.Equal(t, "Verbs", verbs.Category)
	assert.Equal(t, 2, verbs.TotalCards)
	assert.Equal(t, 1, verbs.WithPriorityCount)
	assert.Equal(t, 1, verbs.StudiedCount)
	assert.Equal(t, 1, verbs.UnstudiedCount)
	assert.Equal(t, 8, verbs.TotalAttemptsSum)
	assert.Equal(t, 6, verbs.CorrectTotal)
	assert.Equal(t, 2, verbs.IncorrectTotal)
	assert.InDelta(t, 75.0, verbs.MeanSuccessRate, 1e-9)
}

func TestCollection_SortByDifficulty(t *testing.T) {
	hard := mustCard(t, "schwer", "hard", "", 1, 3)   // 25%
	medium := mustCard(t, "mittel", "medium", "", 1, 1) // 50%
	unstudied := mustCard(t, "neu", "new", "", 0, 0)  // sorts as 100

	c := NewCollection()
	c.Add(unstudied)
	c.Add(medium)
	c.Add(hard)

	c.SortByDifficulty(true)
	assert.Equal(t, []*Card{hard, medium, unstudied}, c.Cards(), "unattempted cards sink to the end ascending")

	c.SortByDifficulty(false)
	assert.Equal(t, []*Card{unstudied, medium, hard}, c.Cards())
}

func TestCollection_RandomSample(t *testing.T) {
	c := NewCollection()
	verb := mustCard(t, "gehen", "to go", "Verbs", 0, 0)
	c.Add(verb)
	c.Add(mustCard(t, "Haus", "house", "Nouns", 0, 0))
	c.Add(mustCard(t, "laufen", "to run", "Verbs", 0, 0))

	rng := rand.New(rand.NewSource(1))

	sample := c.RandomSample(0, nil, rng)
	assert.Len(t, sample, 3, "zero count returns the whole shuffled collection")
	assert.Equal(t, 3, c.Len(), "sampling does not mutate the collection order")

	sample = c.RandomSample(2, nil, rng)
	assert.Len(t, sample, 2)

	sample = c.RandomSample(0, []string{"Verbs"}, rng)
	assert.Len(t, sample, 2)
	for _, card := range sample {
		assert.Equal(t, "Verbs", card.Category)
	}

	sample = c.RandomSample(10, []string{"Verbs"}, rng)
	assert.Len(t, sample, 2, "count larger than the pool is not an error")
}

// TestCollection_RandomSample_Uniform drives the shuffle with a seeded
// source over 3 cards and checks every one of the 3! orderings shows up
// with roughly equal frequency.
func TestCollection_RandomSample_Uniform(t *testing.T) {
	c := NewCollection()
	c.Add(mustCard(t, "a", "1", "", 0, 0))
	c.Add(mustCard(t, "b", "2", "", 0, 0))
	c.Add(mustCard(t, "c", "3", "", 0, 0))

	rng := rand.New(rand.NewSource(42))
	const trials = 6000
	counts := make(map[string]int)
	for i := 0; i < trials; i++ {
		sample := c.RandomSample(0, nil, rng)
		key := ""
		for _, card := range sample {
			key += card.SourceTerm
		}
		counts[key]++
	}

	require.Len(t, counts, 6, "every permutation must be reachable")
	expected := float64(trials) / 6
	for perm, count := range counts {
		assert.InDeltaf(t, expected, float64(count), expected*0.15,
			fmt.Sprintf("permutation %s frequency out of tolerance", perm))
	}
}
