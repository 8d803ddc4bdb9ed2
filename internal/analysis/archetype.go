package analysis

// ArchetypeProfile is the deck's percentage breakdown along fixed strategic
// axes. Axes are computed independently from the same total and are not
// normalized to sum to 100; Other is the non-negative residual.
type ArchetypeProfile struct {
	Ramp        float64 `json:"Ramp"`
	Tutors      float64 `json:"Tutors"`
	Interaction float64 `json:"Interaction"`
	Draw        float64 `json:"Draw"`
	Stax        float64 `json:"Stax"`
	Recursion   float64 `json:"Recursion"`
	Combo       float64 `json:"Combo"`
	Other       float64 `json:"Other"`
}

// DeriveArchetypes maps aggregated label counts onto the archetype axes.
// The label-to-axis composition is fixed contract, mixing regex labels,
// structural labels, and curated-list labels.
func DeriveArchetypes(agg *Aggregate) *ArchetypeProfile {
	count := func(label string) int { return agg.Counts[label] }

	ramp := count("ManaRock") + count("ManaDork") + count("RampLand") + count("fast_mana") + count("Ritual")
	tutors := count("TutorAny") + count("TutorCreature") + count("Tutor") + count("TutorRestricted") + count("unconditional_tutors")
	interaction := count("Counterspell") + count("SpotRemoval") + count("BoardWipe") + count("free_interaction")
	draw := count("Draw") + count("Loot")
	stax := count("staple_stax") + count("Stax") + count("Hatebear")
	recursion := count("Recursion")
	combo := count("ComboPiece") + count("ComboEnabler") + count("combo_enablers")

	total := agg.Total
	if total < 1 {
		total = 1
	}

	other := total - (ramp + tutors + interaction + draw + stax + recursion + combo)
	if other < 0 {
		other = 0
	}

	return &ArchetypeProfile{
		Ramp:        percent(ramp, total),
		Tutors:      percent(tutors, total),
		Interaction: percent(interaction, total),
		Draw:        percent(draw, total),
		Stax:        percent(stax, total),
		Recursion:   percent(recursion, total),
		Combo:       percent(combo, total),
		Other:       percent(other, total),
	}
}
