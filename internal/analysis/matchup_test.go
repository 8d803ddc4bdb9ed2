package analysis

import "testing"

func TestScoreMatchups(t *testing.T) {
	agg := &Aggregate{
		Counts: map[string]int{
			"IsCreature":   20,
			"Counterspell": 2,
			"BoardWipe":    1,
			"Tutor":        3,
			"ManaRock":     4,
			"Draw":         5,
			"Recursion":    1,
		},
		Total: 100,
	}

	result := ScoreMatchups(agg)

	// Raw: Aggro 20-(2+1)=17, Control 2+1=3, Combo 3+4=7, Engine 5+1=6.
	if result.Scores[OpponentAggro] != 1.0 {
		t.Errorf("Aggro score = %v, want 1.0 (max rescaled)", result.Scores[OpponentAggro])
	}
	if len(result.StrongAgainst) != 1 || result.StrongAgainst[0] != OpponentAggro {
		t.Errorf("StrongAgainst = %v, want [Aggro]", result.StrongAgainst)
	}
	if len(result.WeakAgainst) != 1 || result.WeakAgainst[0] != OpponentControl {
		t.Errorf("WeakAgainst = %v, want [Control]", result.WeakAgainst)
	}
	if result.Rationale == "" {
		t.Error("Rationale is empty")
	}
}

func TestScoreMatchupsMaxIsExactlyOne(t *testing.T) {
	agg := &Aggregate{
		Counts: map[string]int{"Draw": 7, "Counterspell": 3},
		Total:  50,
	}

	result := ScoreMatchups(agg)

	max := result.Scores[OpponentAggro]
	for _, s := range result.Scores {
		if s > max {
			max = s
		}
	}
	if max != 1.0 {
		t.Errorf("max normalized score = %v, want exactly 1.0", max)
	}
}

func TestScoreMatchupsAllNonPositive(t *testing.T) {
	// Counterspells and wipes with no creatures drive Aggro negative; with
	// every other axis zero the divisor floors at 1 and no sign flips.
	agg := &Aggregate{
		Counts: map[string]int{"IsCreature": 0},
		Total:  10,
	}

	result := ScoreMatchups(agg)

	for name, s := range result.Scores {
		if s > 0 {
			t.Errorf("score[%s] = %v, want <= 0", name, s)
		}
	}
}

func TestScoreMatchupsNegativeStaysNegative(t *testing.T) {
	agg := &Aggregate{
		Counts: map[string]int{
			"Counterspell": 10,
			"BoardWipe":    5,
		},
		Total: 50,
	}

	result := ScoreMatchups(agg)

	// Aggro raw = 0 - 15 = -15; Control raw = 15 is the max.
	if result.Scores[OpponentAggro] != -1.0 {
		t.Errorf("Aggro score = %v, want -1.0", result.Scores[OpponentAggro])
	}
	if result.Scores[OpponentControl] != 1.0 {
		t.Errorf("Control score = %v, want 1.0", result.Scores[OpponentControl])
	}
	if result.WeakAgainst[0] != OpponentAggro {
		t.Errorf("WeakAgainst = %v, want [Aggro]", result.WeakAgainst)
	}
}
