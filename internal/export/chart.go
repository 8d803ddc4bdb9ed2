package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/deck-labeler/internal/analysis"
)

// archetypeAxes fixes the display order of the profile bars.
var archetypeAxes = []string{"Ramp", "Tutors", "Interaction", "Draw", "Stax", "Recursion", "Combo", "Other"}

// WriteArchetypeChart renders the archetype profile as an interactive bar
// chart HTML file in dir. Returns the path of the written file.
func WriteArchetypeChart(dir string, report *analysis.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	values := map[string]float64{
		"Ramp":        report.Derived.Ramp,
		"Tutors":      report.Derived.Tutors,
		"Interaction": report.Derived.Interaction,
		"Draw":        report.Derived.Draw,
		"Stax":        report.Derived.Stax,
		"Recursion":   report.Derived.Recursion,
		"Combo":       report.Derived.Combo,
		"Other":       report.Derived.Other,
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "900px",
			Height: "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    report.DeckName,
			Subtitle: "Archetype profile (% of deck)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
	)

	yData := make([]opts.BarData, len(archetypeAxes))
	for i, axis := range archetypeAxes {
		yData[i] = opts.BarData{Value: values[axis]}
	}

	bar.SetXAxis(archetypeAxes).
		AddSeries("Archetype %", yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)

	path := filepath.Join(dir, SafeFileName(report.DeckName)+"_archetypes.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := bar.Render(f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}
