// internal/parser/parser.go
package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/akira100e4/Flashcards/internal/model"
)

// Separator divides the source term from the target term on a card line.
const Separator = "→"

var (
	// A single leading bullet marker. The trailing whitespace is required
	// so a "**" priority wrap is never mistaken for a bullet.
	bulletPattern = regexp.MustCompile(`^\s*[*\-•]\s+`)
	// Runs of whitespace, collapsed to single spaces during cleaning.
	spacePattern = regexp.MustCompile(`\s+`)
	// Inline category prefix: the line begins with "[", has a matching
	// "]", and the rest of the line follows.
	categoryPattern = regexp.MustCompile(`^\[([^\]]+)\]\s*(.+)$`)
)

// ParseText converts free-form annotated text into cards, one per valid
// line. It never fails as a batch: malformed card lines are skipped and
// reported as diagnostics, and parsing continues.
//
// Grammar, per line (after trimming):
//   - blank lines are skipped;
//   - "# Name" sets the current category for subsequent lines;
//   - lines without the "→" separator are treated as prose and skipped
//     silently;
//   - "[Name]" at the start of a card line, after any bullet, overrides
//     the current category;
//     the fallback order is bracket prefix, then current heading, then
//     defaultCategory;
//   - "**" anywhere in the raw line marks the card as priority;
//   - the line is cleaned (one leading bullet stripped, whitespace
//     collapsed, "**" removed) and split on "→", which must yield exactly
//     two non-empty terms.
func ParseText(text, defaultCategory string) ([]*model.Card, []model.ParseDiagnostic) {
	if strings.TrimSpace(defaultCategory) == "" {
		defaultCategory = model.DefaultCategory
	}

	var cards []*model.Card
	var diagnostics []model.ParseDiagnostic
	currentCategory := defaultCategory

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			name := strings.TrimSpace(strings.TrimLeft(line, "#"))
			if name == "" {
				name = defaultCategory
			}
			currentCategory = name
			continue
		}

		// Lines without the separator are prose, not malformed cards.
		if !strings.Contains(line, Separator) {
			continue
		}

		// Priority is a substring test on the original line, before any
		// cleaning removes the markers.
		priority := strings.Contains(line, "**")

		// The bracket prefix sits after an optional bullet, so the bullet
		// comes off first.
		rest := bulletPattern.ReplaceAllString(line, "")

		category := currentCategory
		if m := categoryPattern.FindStringSubmatch(rest); m != nil {
			category = strings.TrimSpace(m[1])
			rest = m[2]
		}

		cleaned := spacePattern.ReplaceAllString(rest, " ")
		cleaned = strings.ReplaceAll(cleaned, "**", "")
		cleaned = strings.TrimSpace(cleaned)

		parts := strings.Split(cleaned, Separator)
		if len(parts) != 2 {
			diagnostics = append(diagnostics, model.ParseDiagnostic{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected exactly one %q separator, found %d", Separator, len(parts)-1),
			})
			continue
		}

		card, err := model.NewCard(parts[0], parts[1])
		if err != nil {
			diagnostics = append(diagnostics, model.ParseDiagnostic{
				Line:   lineNo,
				Reason: "empty source or target term",
			})
			continue
		}
		card.Category = category
		card.Priority = priority
		cards = append(cards, card)
	}

	return cards, diagnostics
}

// CardToText renders a single card in the import text format. The category
// prefix is emitted only when it differs from defaultCategory.
func CardToText(card *model.Card, defaultCategory string) string {
	if strings.TrimSpace(defaultCategory) == "" {
		defaultCategory = model.DefaultCategory
	}
	text := card.SourceTerm + " " + Separator + " " + card.TargetTerm
	if card.Priority {
		text = "**" + text + "**"
	}
	if card.Category != "" && card.Category != defaultCategory {
		text = "[" + card.Category + "] " + text
	}
	return text
}

// CollectionToText renders cards grouped by category: a "# Category"
// heading whenever the category changes, a blank line between groups, and
// one bulleted card per line. Parsing the output reproduces the same
// (source, target, category, priority) tuples; statistics do not survive
// this form.
func CollectionToText(cards []*model.Card, defaultCategory string) string {
	sorted := make([]*model.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Category < sorted[j].Category
	})

	var lines []string
	currentCategory := ""
	for _, card := range sorted {
		if card.Category != currentCategory || len(lines) == 0 {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, "# "+card.Category)
			currentCategory = card.Category
		}
		lines = append(lines, "* "+CardToText(card, defaultCategory))
	}
	return strings.Join(lines, "\n")
}
