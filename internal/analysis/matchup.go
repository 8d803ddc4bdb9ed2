package analysis

import (
	"fmt"
	"sort"
)

// Reference playstyles the deck is scored against.
const (
	OpponentAggro   = "Aggro"
	OpponentControl = "Control"
	OpponentCombo   = "Combo"
	OpponentEngine  = "Engine"
)

// MatchupResult is the relative-strength assessment against the four
// reference playstyles. Scores are normalized so the best matchup is 1,
// except that raw scores never increase: a negative raw score stays negative
// after division.
type MatchupResult struct {
	Scores        map[string]float64 `json:"scores"`
	StrongAgainst []string           `json:"strong_against"`
	WeakAgainst   []string           `json:"weak_against"`
	Rationale     string             `json:"because"`
}

// ScoreMatchups computes the matchup assessment from aggregated label
// counts. The divisor is the maximum raw score floored at 1, preventing both
// division by zero and sign flips from a negative maximum.
func ScoreMatchups(agg *Aggregate) *MatchupResult {
	count := func(label string) int { return agg.Counts[label] }

	raw := map[string]int{
		OpponentAggro:   count("IsCreature") - (count("Counterspell") + count("BoardWipe")),
		OpponentControl: count("Counterspell") + count("BoardWipe") + count("free_interaction"),
		OpponentCombo:   count("Tutor") + count("TutorAny") + count("fast_mana") + count("ManaRock"),
		OpponentEngine:  count("Draw") + count("Recursion"),
	}

	maxRaw := 1
	for _, v := range raw {
		if v > maxRaw {
			maxRaw = v
		}
	}

	scores := make(map[string]float64, len(raw))
	for name, v := range raw {
		scores[name] = float64(v) / float64(maxRaw)
	}

	// Stable sort over a fixed base order so tied scores resolve toward the
	// resource axes: a deck with equal signals reads as Combo/Engine-leaning
	// rather than aggressive.
	names := []string{OpponentEngine, OpponentCombo, OpponentControl, OpponentAggro}
	sort.SliceStable(names, func(i, j int) bool {
		return scores[names[i]] > scores[names[j]]
	})

	best := names[0]
	worst := names[len(names)-1]

	return &MatchupResult{
		Scores:        scores,
		StrongAgainst: []string{best},
		WeakAgainst:   []string{worst},
		Rationale:     fmt.Sprintf("High %s signals and lower %s signals based on labels.", best, worst),
	}
}
