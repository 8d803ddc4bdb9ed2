// Package labels implements the data-driven card labeling engine: a JSON
// rule document (curated name lists, positive regex rules, negative
// overrides) compiled into an immutable RuleSet and evaluated per card.
package labels

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is the labels configuration document. Curated lists confer
// high-confidence labels by exact name; regex rules label cards by oracle
// text; negative rules suppress a regex label when they also match.
type Document struct {
	Version       int                 `json:"version"`
	CuratedLists  map[string][]string `json:"curated_lists"`
	RegexRules    map[string][]string `json:"regex_rules"`
	RegexNegative map[string][]string `json:"regex_negative"`
}

// DefaultDocument returns the built-in labels configuration used when no
// config file is available.
func DefaultDocument() *Document {
	return &Document{
		Version: 1,
		CuratedLists: map[string][]string{
			"fast_mana":            {"Sol Ring", "Mana Crypt", "Mana Vault", "Grim Monolith"},
			"unconditional_tutors": {"Demonic Tutor", "Vampiric Tutor", "Enlightened Tutor"},
			"free_interaction":     {"Force of Will", "Force of Negation", "Fierce Guardianship", "Swan Song"},
			"staple_board_wipes":   {"Wrath of God", "Supreme Verdict", "Damnation", "Toxic Deluge"},
			"staple_stax":          {"Smokestack", "Winter Orb", "Stasis", "Rule of Law"},
			"combo_enablers":       {"Underworld Breach", "Dockside Extortionist"},
			"mill_staples":         {"Bruvac the Grandiloquent", "Maddening Cacophony", "Mesmeric Orb", "Mindcrank", "Ruin Crab", "Fractured Sanity"},
			"wheel_staples":        {"Wheel of Fortune", "Windfall", "Wheel of Misfortune", "Reforge the Soul"},
			"aristocrats_staples":  {"Blood Artist", "Zulaport Cutthroat", "Cruel Celebrant", "Bastion of Remembrance"},
			"tokens_staples":       {"Doubling Season", "Anointed Procession", "Parallel Lives", "Mondrak, Glory Dominus"},
			"lifegain_staples":     {"Soul Warden", "Soul's Attendant", "Authority of the Consuls", "Ajani's Pridemate"},
			"reanimator_staples":   {"Reanimate", "Animate Dead", "Necromancy", "Dance of the Dead"},
		},
		RegexRules: map[string][]string{
			"TutorAny":        {"search your library for a card"},
			"Tutor":           {"search your library for", "search .*library for"},
			"TutorCreature":   {"search your library for a creature card"},
			"TutorRestricted": {"search your library for an? (artifact|enchantment|instant|sorcery|land) card"},
			"Counterspell":    {"counter target", "countered"},
			"SpotRemoval":     {"destroy target", "exile target", `deals? \d+ damage to target`},
			"BoardWipe":       {"destroy all", "exile all", "destroy each"},
			"Recursion":       {"return target .* from your graveyard", "return .* card from your graveyard"},
			"Mill": {
				"mill",
				`put the top .* cards? of .* library into .* graveyard`,
				`puts? the top .* cards? of .* library into .* graveyard`,
			},
			"Discard":     {"target player discards", "each opponent discards", "each player discards", "discard a card"},
			"Wheel":       {"discards? .* hand, then draws?", "each player discards .* (?:and|then) draws?", "then draws? that many cards"},
			"Aristocrats": {`whenever .* dies, .* loses? \d+ life`, `whenever .* dies, you gain \d+ life`, "sacrifice a creature:"},
			"Tokens":      {"create .* token", "create one or more", "populate"},
			"Lifegain":    {`gain \d+ life`, "you gain life", "whenever you gain life"},
			"Reanimator": {
				"return target creature card from your graveyard to the battlefield",
				"return target creature card from a graveyard to the battlefield",
				"return target creature from your graveyard to the battlefield",
				"put target creature card from a graveyard onto the battlefield",
			},
			"Draw":         {"draw (?:one|two|three|[0-9]+) card", "draw cards", "draw a card"},
			"Loot":         {"draw .* then discard", "draw a card, then discard a card"},
			"RampLand":     {"search your library for a land card", "put a land card onto the battlefield"},
			"Ritual":       {`add (?:\w+ )?mana`, `add \w+ to your mana pool`},
			"SacOutlet":    {"sacrifice .*:"},
			"Stax":         {`players? can'?t`, "skip your untap step", "tax", `costs? \d+ more`},
			"Hatebear":     {"noncreature spells? cost", `activated abilities? of artifacts? can'?t`},
			"ComboPiece":   {"if you control .* then", "if you have .* you win", "infinite"},
			"ComboEnabler": {"you may cast from your graveyard", "cast cards? from your graveyard"},
			"ProduceMana":  {"tap: add", "add .*mana"},
		},
		RegexNegative: map[string][]string{
			"Draw":        {"you may draw"},
			"Tutor":       {"may search for a basic land card"},
			"ProduceMana": {"add mana equal to"},
		},
	}
}

// LoadDocument reads a labels config document from path. A missing or
// malformed file is not fatal: the built-in default document is returned
// along with the error so callers can log the fallback.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultDocument(), fmt.Errorf("read labels config: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return DefaultDocument(), fmt.Errorf("parse labels config: %w", err)
	}
	return &doc, nil
}

// SaveDocument writes the document to path as indented JSON.
func SaveDocument(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal labels config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write labels config: %w", err)
	}
	return nil
}

// LoadOrCreateDocument loads the document at path, writing the default
// document there first if the file does not exist.
func LoadOrCreateDocument(path string) (*Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		doc := DefaultDocument()
		if err := SaveDocument(path, doc); err != nil {
			return doc, err
		}
		return doc, nil
	}
	return LoadDocument(path)
}
