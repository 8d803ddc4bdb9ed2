package deck

import (
	"regexp"
	"strconv"
	"strings"
)

// Section headers recognized in deck-list exports. Matching is
// case-insensitive against the whole trimmed line.
var (
	commanderHeaders = map[string]bool{"commander": true, "commanders": true}
	mainHeaders      = map[string]bool{"mainboard": true, "main deck": true, "maindeck": true, "main": true}
	ignoreHeaders    = map[string]bool{"sideboard": true, "maybeboard": true, "maybe board": true, "may be board": true}
)

var (
	// "4 Lightning Bolt" or "4x Lightning Bolt"
	leadingQtyPattern = regexp.MustCompile(`^(\d+)x?\s+(.+)$`)
	// "Lightning Bolt x4"
	trailingQtyPattern = regexp.MustCompile(`^(.+?)\s+x(\d+)$`)
	// Category summary lines some exporters emit, e.g. "creatures (24)".
	summaryLinePattern = regexp.MustCompile(`^[a-z ].*\(\d+\)$`)

	// Trailing set/collector annotations and foil markers stripped from names.
	parenSetSuffix   = regexp.MustCompile(`\s+\(.*\)\s*\d+$`)
	bracketSetSuffix = regexp.MustCompile(`\s+\[.*\]\s*\d+$`)
	foilSuffix       = regexp.MustCompile(`\s+\*?F\*?$`)
)

// CleanName strips trailing set/collector-number annotations and foil markers
// from a card line. Suffixes can stack ("Name [CMR] 297 F"), so stripping
// repeats until the name stops changing. Idempotent: cleaning an already-clean
// name is a no-op.
func CleanName(line string) string {
	name := strings.TrimSpace(line)
	for {
		prev := name
		name = parenSetSuffix.ReplaceAllString(name, "")
		name = bracketSetSuffix.ReplaceAllString(name, "")
		name = foilSuffix.ReplaceAllString(name, "")
		name = strings.TrimSpace(name)
		if name == prev {
			return name
		}
	}
}

type section int

const (
	sectionMain section = iota
	sectionCommander
	sectionIgnore
)

// ParseText parses a plain-text deck list into a Deck. It operates
// line-by-line and never fails: lines that cannot be understood contribute
// nothing. Supported shapes are section headers (Commander/Mainboard/
// Sideboard and variants), "Name:"/"Deck:" and "Commander(s):" metadata
// lines, comment lines ("//" or "#"), and card lines with a leading or
// trailing quantity.
func ParseText(text string) *Deck {
	d := NewDeck()
	current := sectionMain

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		low := strings.ToLower(line)

		switch {
		case commanderHeaders[low]:
			current = sectionCommander
			continue
		case mainHeaders[low]:
			current = sectionMain
			continue
		case ignoreHeaders[low]:
			current = sectionIgnore
			continue
		}

		if strings.HasPrefix(low, "name:") || strings.HasPrefix(low, "deck:") {
			d.Name = strings.TrimSpace(line[strings.Index(line, ":")+1:])
			continue
		}
		if strings.HasPrefix(low, "commander:") || strings.HasPrefix(low, "commanders:") {
			rest := line[strings.Index(line, ":")+1:]
			for _, part := range strings.Split(rest, ",") {
				d.AddCommander(CleanName(part))
			}
			current = sectionMain
			continue
		}

		if summaryLinePattern.MatchString(low) {
			continue
		}
		if strings.HasPrefix(low, "//") || strings.HasPrefix(low, "#") {
			continue
		}
		if current == sectionIgnore {
			continue
		}

		name, qty := parseCardLine(line)
		if name == "" {
			continue
		}
		d.AddCard(name, qty)
		if current == sectionCommander {
			d.AddCommander(name)
		}
	}

	return d
}

// parseCardLine extracts the cleaned card name and quantity from a card line.
// Quantity defaults to 1 when the line carries none.
func parseCardLine(line string) (string, int) {
	if m := leadingQtyPattern.FindStringSubmatch(line); m != nil {
		if qty, err := strconv.Atoi(m[1]); err == nil {
			return CleanName(m[2]), qty
		}
	}
	if m := trailingQtyPattern.FindStringSubmatch(line); m != nil {
		if qty, err := strconv.Atoi(m[2]); err == nil {
			return CleanName(m[1]), qty
		}
	}
	return CleanName(line), 1
}
