package labels

import (
	"regexp"
	"strings"

	"github.com/ramonehamilton/deck-labeler/internal/scryfall"
)

var (
	reminderText = regexp.MustCompile(`\([^)]*\)`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// NormalizeOracleText produces the canonical oracle-text form used for all
// pattern matching: all faces joined with a separator, reminder text
// stripped, whitespace collapsed, lower-cased, trimmed. Positive and negative
// patterns are always evaluated against this same form.
func NormalizeOracleText(card *scryfall.Card) string {
	if card == nil {
		return ""
	}

	text := card.OracleText
	if text == "" && len(card.CardFaces) > 0 {
		parts := make([]string, 0, len(card.CardFaces))
		for _, face := range card.CardFaces {
			parts = append(parts, face.OracleText)
		}
		text = strings.Join(parts, "\n//\n")
	}

	text = reminderText.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}
