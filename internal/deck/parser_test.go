package deck

import (
	"testing"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Sol Ring", "Sol Ring"},
		{"set and collector number", "Sol Ring (C21) 263", "Sol Ring"},
		{"bracket set annotation", "Sol Ring [C21] 263", "Sol Ring"},
		{"foil marker", "Sol Ring F", "Sol Ring"},
		{"starred foil marker", "Sol Ring *F*", "Sol Ring"},
		{"stacked annotation and foil marker", "Arcane Signet [CMR] 297 F", "Arcane Signet"},
		{"stacked paren annotation and foil marker", "Sol Ring (C21) 263 *F*", "Sol Ring"},
		{"surrounding whitespace", "  Sol Ring  ", "Sol Ring"},
		{"name containing parens mid-line", "Borrowing 100,000 Arrows", "Borrowing 100,000 Arrows"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.input); got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanNameIdempotent(t *testing.T) {
	inputs := []string{
		"Sol Ring (C21) 263",
		"Lightning Bolt *F*",
		"Arcane Signet [CMR] 297 F",
		"Command Tower",
	}
	for _, input := range inputs {
		once := CleanName(input)
		twice := CleanName(once)
		if once != twice {
			t.Errorf("CleanName not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		wantName       string
		wantCommanders []string
		wantCards      map[string]int
	}{
		{
			name:      "leading quantity",
			input:     "4 Lightning Bolt\n2x Shock",
			wantName:  "Untitled",
			wantCards: map[string]int{"Lightning Bolt": 4, "Shock": 2},
		},
		{
			name:      "trailing quantity",
			input:     "Lightning Bolt x4",
			wantName:  "Untitled",
			wantCards: map[string]int{"Lightning Bolt": 4},
		},
		{
			name:      "bare name defaults to one",
			input:     "Sol Ring",
			wantName:  "Untitled",
			wantCards: map[string]int{"Sol Ring": 1},
		},
		{
			name:      "repeated names accumulate",
			input:     "2 Sol Ring\n1 Sol Ring",
			wantName:  "Untitled",
			wantCards: map[string]int{"Sol Ring": 3},
		},
		{
			name:      "deck name metadata",
			input:     "Name: Mill Forever\n1 Island",
			wantName:  "Mill Forever",
			wantCards: map[string]int{"Island": 1},
		},
		{
			name:           "commander metadata line",
			input:          "Commander: Atraxa, Praetors' Voice\n1 Sol Ring",
			wantName:       "Untitled",
			wantCommanders: []string{"Atraxa", "Praetors' Voice"},
			wantCards:      map[string]int{"Atraxa": 1, "Praetors' Voice": 1, "Sol Ring": 1},
		},
		{
			name:           "commander section",
			input:          "Commander\n1 Muldrotha, the Gravetide\nMainboard\n1 Sol Ring",
			wantName:       "Untitled",
			wantCommanders: []string{"Muldrotha, the Gravetide"},
			wantCards:      map[string]int{"Muldrotha, the Gravetide": 1, "Sol Ring": 1},
		},
		{
			name:      "sideboard ignored until next header",
			input:     "1 Sol Ring\nSideboard\n1 Counterspell\n1 Negate\nMainboard\n1 Island",
			wantName:  "Untitled",
			wantCards: map[string]int{"Sol Ring": 1, "Island": 1},
		},
		{
			name:      "comments and summary lines skipped",
			input:     "// my list\n# notes\ncreatures (24)\n1 Llanowar Elves",
			wantName:  "Untitled",
			wantCards: map[string]int{"Llanowar Elves": 1},
		},
		{
			name:      "set annotations stripped",
			input:     "1 Sol Ring (C21) 263\n1 Sol Ring [CMR] 472",
			wantName:  "Untitled",
			wantCards: map[string]int{"Sol Ring": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ParseText(tt.input)

			if d.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", d.Name, tt.wantName)
			}
			if len(d.Commanders) != len(tt.wantCommanders) {
				t.Fatalf("Commanders = %v, want %v", d.Commanders, tt.wantCommanders)
			}
			for i, want := range tt.wantCommanders {
				if d.Commanders[i] != want {
					t.Errorf("Commanders[%d] = %q, want %q", i, d.Commanders[i], want)
				}
			}
			if len(d.Cards) != len(tt.wantCards) {
				t.Fatalf("Cards = %v, want %v", d.Cards, tt.wantCards)
			}
			for name, want := range tt.wantCards {
				if got := d.Cards[name]; got != want {
					t.Errorf("Cards[%q] = %d, want %d", name, got, want)
				}
			}
		})
	}
}

func TestCommanderInsertedIntoCardMap(t *testing.T) {
	d := NewDeck()
	d.AddCard("Sol Ring", 1)
	d.AddCommander("Kess, Dissident Mage")

	if got := d.Cards["Kess, Dissident Mage"]; got != 1 {
		t.Errorf("commander quantity = %d, want 1", got)
	}

	// A commander already in the card map keeps its quantity.
	d2 := NewDeck()
	d2.AddCard("Kess, Dissident Mage", 2)
	d2.AddCommander("Kess, Dissident Mage")
	if got := d2.Cards["Kess, Dissident Mage"]; got != 2 {
		t.Errorf("pre-existing commander quantity = %d, want 2", got)
	}
}

func TestAddCommanderDeduplicates(t *testing.T) {
	d := NewDeck()
	d.AddCommander("Tymna the Weaver")
	d.AddCommander("Tymna the Weaver")
	if len(d.Commanders) != 1 {
		t.Errorf("commanders = %v, want single entry", d.Commanders)
	}
}
