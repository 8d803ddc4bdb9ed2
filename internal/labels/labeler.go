package labels

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ramonehamilton/deck-labeler/internal/scryfall"
)

// Label is a functional tag assigned to a card, with a confidence in [0,1]
// and an evidence tag naming what produced it.
type Label struct {
	Name       string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Evidence   string  `json:"evidence"`
}

// Confidence levels by label source. Curated lists outrank structural
// metadata, which outranks regex matches.
const (
	confidenceCurated    = 0.95
	confidenceLegendary  = 0.90
	confidenceManaSource = 0.88
	confidenceTypeLine   = 0.85
	confidenceKeyword    = 0.80
	confidenceProduces   = 0.80
	confidenceLegality   = 0.80
	confidenceArtifact   = 0.70
	confidenceCMC        = 0.70
	confidenceRegex      = 0.60
)

// labelSet accumulates labels for one card. A later write only replaces an
// existing label of the same name when it carries higher confidence.
type labelSet map[string]Label

func (ls labelSet) add(name string, confidence float64, evidence string) {
	if existing, ok := ls[name]; ok && existing.Confidence >= confidence {
		return
	}
	ls[name] = Label{Name: name, Confidence: confidence, Evidence: evidence}
}

// LabelCard evaluates a card's metadata against the rule set and returns the
// applicable labels sorted by descending confidence, then name. Missing
// metadata fields never raise an error; labels dependent on them simply do
// not fire. Distinct cards may be labeled concurrently: neither the card nor
// the rule set is mutated.
func (rs *RuleSet) LabelCard(card *scryfall.Card, name string) []Label {
	labels := make(labelSet)

	for _, listName := range rs.CuratedListsFor(name) {
		labels.add(listName, confidenceCurated, "curated:"+listName)
	}

	var typeLine string
	var oracle string
	if card != nil {
		typeLine = strings.ToLower(card.TypeLine)
		oracle = NormalizeOracleText(card)
	}

	if strings.Contains(typeLine, "land") && !strings.Contains(typeLine, "creature") {
		labels.add("IsLand", confidenceTypeLine, "type_line:land")
	}
	if strings.Contains(typeLine, "creature") {
		labels.add("IsCreature", confidenceTypeLine, "type_line:creature")
	}
	if strings.Contains(typeLine, "legendary") {
		labels.add("IsLegendary", confidenceLegendary, "type_line:legendary")
	}
	if card != nil && card.Legalities.Commander == "legal" {
		labels.add("CommanderLegal", confidenceLegality, "legalities:commander")
	}
	if card != nil && card.CMC != nil {
		labels.add(fmt.Sprintf("CMC:%d", int(*card.CMC)), confidenceCMC, "cmc")
	}
	if card != nil {
		for _, kw := range card.Keywords {
			labels.add("HasKeyword:"+strings.ToLower(kw), confidenceKeyword, "keywords")
		}
	}

	producesMana := false
	if card != nil {
		producesMana = len(card.ProducedMana) > 0 ||
			(strings.Contains(oracle, "add") && strings.Contains(oracle, "mana"))
	}
	if producesMana {
		labels.add("ProducesMana", confidenceProduces, "produced_mana/oracle")
	}
	if strings.Contains(typeLine, "artifact") {
		if producesMana {
			labels.add("ManaRock", confidenceManaSource, "artifact+produces_mana")
		} else {
			labels.add("Artifact", confidenceArtifact, "type_line:artifact")
		}
	}
	if strings.Contains(typeLine, "creature") && producesMana {
		labels.add("ManaDork", confidenceManaSource, "creature+produces_mana")
	}

	// Regex rules run last at the lowest confidence so they can never
	// downgrade a curated or structural hit. Negative patterns suppress only
	// this step, never the steps above.
	for label := range rs.positive {
		if !rs.matchesPositive(label, oracle) {
			continue
		}
		if rs.matchesNegative(label, oracle) {
			continue
		}
		labels.add(label, confidenceRegex, "regex:"+label)
	}

	out := make([]Label, 0, len(labels))
	for _, l := range labels {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Name < out[j].Name
	})
	return out
}
