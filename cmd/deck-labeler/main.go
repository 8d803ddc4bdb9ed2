// Command deck-labeler analyzes Commander deck lists: it resolves a deck
// from plain text or a deck-site URL, labels every card, and writes a JSON
// report (and optional archetype chart) per deck.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ramonehamilton/deck-labeler/internal/analysis"
	"github.com/ramonehamilton/deck-labeler/internal/cards"
	"github.com/ramonehamilton/deck-labeler/internal/config"
	"github.com/ramonehamilton/deck-labeler/internal/deck"
	"github.com/ramonehamilton/deck-labeler/internal/export"
	"github.com/ramonehamilton/deck-labeler/internal/labels"
	"github.com/ramonehamilton/deck-labeler/internal/scryfall"
	"github.com/ramonehamilton/deck-labeler/internal/spellbook"
	"github.com/ramonehamilton/deck-labeler/internal/storage"
	"github.com/ramonehamilton/deck-labeler/internal/version"
)

var (
	debugMode      = flag.Bool("debug-mode", false, "Enable verbose debug logging")
	debugModeShort = flag.Bool("d", false, "Enable debug logging (shorthand for -debug-mode)")

	labelsConfigPath = flag.String("labels-config", "", "Path to labels_config.json (default: per app config)")
	watchLabels      = flag.Bool("watch", false, "Reload label rules when the config file changes")

	outputDir = flag.String("output-dir", "", "Directory for report files (default: per app config)")
	chart     = flag.Bool("chart", false, "Also write an HTML archetype chart")

	noCache  = flag.Bool("no-cache", false, "Disable the local card cache")
	noCombos = flag.Bool("no-combos", false, "Skip the Commander Spellbook combo lookup")

	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [deck-file ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Reads deck lists from the given files, or from stdin when no files are\n")
		fmt.Fprintf(os.Stderr, "given. Each input may be a plain deck list or contain a Moxfield or\n")
		fmt.Fprintf(os.Stderr, "Archidekt deck URL.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("deck-labeler %s\n", version.GetVersion())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	applyFlagOverrides(cfg)

	level := slog.LevelInfo
	if cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := labels.LoadOrCreateDocument(cfg.Labels.ConfigPath)
	if err != nil {
		logger.Info("using built-in label rules", "path", cfg.Labels.ConfigPath, "reason", err)
	}
	ruleSet, err := labels.Compile(doc)
	if err != nil {
		log.Fatalf("Failed to compile label rules: %v", err)
	}

	cardSource, closeCache := buildCardSource(cfg, logger)
	defer closeCache()

	var comboFinder analysis.ComboFinder
	if !*noCombos {
		comboFinder = spellbook.NewClient()
	}

	analyzer := analysis.NewAnalyzer(deck.NewResolver(logger), cardSource, comboFinder, ruleSet, logger)

	if cfg.Labels.Watch {
		watcher, err := labels.NewWatcher(cfg.Labels.ConfigPath, logger)
		if err != nil {
			log.Fatalf("Failed to watch labels config: %v", err)
		}
		defer func() { _ = watcher.Close() }()
		go watcher.Run(ctx)
		go func() {
			for rs := range watcher.Updates() {
				analyzer.SetRules(rs)
			}
		}()
	}

	inputs, err := readInputs(flag.Args())
	if err != nil {
		log.Fatalf("Failed to read deck input: %v", err)
	}

	start := time.Now()
	for _, input := range inputs {
		report, err := analyzer.Analyze(ctx, input.text)
		if err != nil {
			log.Fatalf("Analysis failed for %s: %v", input.source, err)
		}

		path, err := export.WriteReport(cfg.Output.Dir, report)
		if err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		logger.Info("report written", "deck", report.DeckName, "path", path)

		if cfg.Output.Chart {
			chartPath, err := export.WriteArchetypeChart(cfg.Output.Dir, report)
			if err != nil {
				log.Fatalf("Failed to write chart: %v", err)
			}
			logger.Info("chart written", "deck", report.DeckName, "path", chartPath)
		}

		printSummary(report)
	}
	logger.Debug("done", "decks", len(inputs), "elapsed", time.Since(start))
}

// applyFlagOverrides layers explicit command-line flags over the loaded
// configuration.
func applyFlagOverrides(cfg *config.Config) {
	if *debugMode || *debugModeShort {
		cfg.App.DebugMode = true
	}
	if *labelsConfigPath != "" {
		cfg.Labels.ConfigPath = *labelsConfigPath
	}
	if *watchLabels {
		cfg.Labels.Watch = true
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *chart {
		cfg.Output.Chart = true
	}
	if *noCache {
		cfg.Cache.Enabled = false
	}
}

// buildCardSource wires the Scryfall client, with the SQLite cache in front
// when enabled. Cache setup failure degrades to uncached lookups.
func buildCardSource(cfg *config.Config, logger *slog.Logger) (analysis.CardSource, func()) {
	client := scryfall.NewClient()
	if !cfg.Cache.Enabled {
		return cards.NewService(client, nil, logger), func() {}
	}

	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		ttl = 0
	}

	db, err := storage.Open(storage.DefaultConfig(cfg.Cache.Path))
	if err != nil {
		logger.Warn("card cache unavailable, continuing without it", "path", cfg.Cache.Path, "error", err)
		return cards.NewService(client, nil, logger), func() {}
	}

	return cards.NewService(client, storage.NewCardCache(db, ttl), logger), func() { _ = db.Close() }
}

type deckInput struct {
	source string
	text   string
}

// readInputs collects deck text from the given files, or stdin when none.
func readInputs(paths []string) ([]deckInput, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []deckInput{{source: "stdin", text: string(data)}}, nil
	}

	inputs := make([]deckInput, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		inputs = append(inputs, deckInput{source: path, text: string(data)})
	}
	return inputs, nil
}

// printSummary writes the human-readable result to stdout.
func printSummary(report *analysis.Report) {
	fmt.Printf("\nDeck: %s\n", report.DeckName)
	if len(report.Commanders) > 0 {
		fmt.Printf("Commander(s): %s\n", strings.Join(report.Commanders, ", "))
	}
	fmt.Printf("Cards: %d\n\n", report.Aggregate.Total)

	fmt.Printf("  %-12s %5.1f%%\n", "Ramp", report.Derived.Ramp)
	fmt.Printf("  %-12s %5.1f%%\n", "Tutors", report.Derived.Tutors)
	fmt.Printf("  %-12s %5.1f%%\n", "Interaction", report.Derived.Interaction)
	fmt.Printf("  %-12s %5.1f%%\n", "Draw", report.Derived.Draw)
	fmt.Printf("  %-12s %5.1f%%\n", "Stax", report.Derived.Stax)
	fmt.Printf("  %-12s %5.1f%%\n", "Recursion", report.Derived.Recursion)
	fmt.Printf("  %-12s %5.1f%%\n", "Combo", report.Derived.Combo)
	fmt.Printf("  %-12s %5.1f%%\n", "Other", report.Derived.Other)

	fmt.Printf("\nStrong against: %s\n", strings.Join(report.Matchup.StrongAgainst, ", "))
	fmt.Printf("Weak against:   %s\n", strings.Join(report.Matchup.WeakAgainst, ", "))
	fmt.Printf("Notes: %s\n", report.Matchup.Rationale)

	if len(report.Spellbook.Included) > 0 {
		fmt.Printf("\nCombos found: %d\n", len(report.Spellbook.Included))
	}
}
