package analysis

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/ramonehamilton/deck-labeler/internal/deck"
	"github.com/ramonehamilton/deck-labeler/internal/labels"
	"github.com/ramonehamilton/deck-labeler/internal/scryfall"
	"github.com/ramonehamilton/deck-labeler/internal/spellbook"
)

// CardSource supplies card metadata by exact name. Implementations may cache;
// the analyzer only requires that a lookup either yields a card or an error.
type CardSource interface {
	GetCardByName(ctx context.Context, name string) (*scryfall.Card, error)
}

// ComboFinder looks up the combos contained in a deck.
type ComboFinder interface {
	FindCombos(ctx context.Context, commanders []string, cards map[string]int) (*spellbook.Result, error)
}

// Report is the full analysis output for one deck.
type Report struct {
	DeckName   string            `json:"deck_name"`
	Commanders []string          `json:"commanders"`
	Cards      []*CardReport     `json:"cards"`
	Aggregate  *Aggregate        `json:"aggregate"`
	Derived    *ArchetypeProfile `json:"derived"`
	Matchup    *MatchupResult    `json:"matchup"`
	Spellbook  *spellbook.Result `json:"commander_spellbook"`
}

// CardReport is the per-card slice of the report: quantity, the metadata the
// labeler saw, and the labels it produced.
type CardReport struct {
	Name     string         `json:"name"`
	Quantity int            `json:"quantity"`
	Scryfall *CardMetadata  `json:"scryfall"`
	Labels   []labels.Label `json:"labels"`
}

// CardMetadata is the metadata subset echoed into the report. OracleText is
// the normalized form the patterns were matched against.
type CardMetadata struct {
	TypeLine     string   `json:"type_line,omitempty"`
	CMC          *float64 `json:"cmc,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	ProducedMana []string `json:"produced_mana,omitempty"`
	OracleText   string   `json:"oracle_text"`
}

// Analyzer runs the full pipeline: deck resolution, metadata lookup,
// labeling, aggregation, archetype derivation, and matchup scoring. The rule
// set may be swapped at runtime (config hot reload); each run uses whichever
// rule set was current when it started.
type Analyzer struct {
	resolver *deck.Resolver
	cards    CardSource
	combos   ComboFinder
	logger   *slog.Logger

	mu    sync.RWMutex
	rules *labels.RuleSet
}

// NewAnalyzer creates an analyzer. combos may be nil, in which case the
// report carries an empty combo result.
func NewAnalyzer(resolver *deck.Resolver, cards CardSource, combos ComboFinder, rules *labels.RuleSet, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		resolver: resolver,
		cards:    cards,
		combos:   combos,
		logger:   logger,
		rules:    rules,
	}
}

// SetRules replaces the rule set used by subsequent runs.
func (a *Analyzer) SetRules(rs *labels.RuleSet) {
	a.mu.Lock()
	a.rules = rs
	a.mu.Unlock()
}

func (a *Analyzer) currentRules() *labels.RuleSet {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rules
}

// Analyze resolves raw deck input and produces the full report. Metadata
// lookup failures and combo lookup failures degrade the report instead of
// failing the run.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*Report, error) {
	resolution := a.resolver.Resolve(ctx, text)
	d := resolution.Deck
	a.logger.Info("deck resolved", "name", d.Name, "source", resolution.Source.String(), "cards", len(d.Cards))

	rules := a.currentRules()

	// Cards are processed in a fixed order so logs and report rows are
	// reproducible; the aggregate itself is order-independent.
	names := make([]string, 0, len(d.Cards))
	for name := range d.Cards {
		names = append(names, name)
	}
	sort.Strings(names)

	labelsByCard := make(map[string][]labels.Label, len(names))
	cardReports := make([]*CardReport, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := a.cards.GetCardByName(ctx, name)
		if err != nil {
			var nf *scryfall.NotFoundError
			if errors.As(err, &nf) {
				a.logger.Warn("card not found", "name", name)
			} else {
				a.logger.Warn("card lookup failed", "name", name, "error", err)
			}
			card = nil
		}

		cardLabels := rules.LabelCard(card, name)
		labelsByCard[name] = cardLabels

		report := &CardReport{
			Name:     name,
			Quantity: d.Cards[name],
			Labels:   cardLabels,
		}
		if card != nil {
			report.Scryfall = &CardMetadata{
				TypeLine:     card.TypeLine,
				CMC:          card.CMC,
				Keywords:     card.Keywords,
				ProducedMana: card.ProducedMana,
				OracleText:   labels.NormalizeOracleText(card),
			}
		}
		cardReports = append(cardReports, report)
	}

	agg := AggregateLabels(labelsByCard, d.Cards)

	combos := &spellbook.Result{Included: []spellbook.Combo{}}
	if a.combos != nil {
		if result, err := a.combos.FindCombos(ctx, d.Commanders, d.Cards); err != nil {
			a.logger.Warn("combo lookup failed, continuing without combos", "error", err)
		} else {
			combos = result
		}
	}

	return &Report{
		DeckName:   d.Name,
		Commanders: d.Commanders,
		Cards:      cardReports,
		Aggregate:  agg,
		Derived:    DeriveArchetypes(agg),
		Matchup:    ScoreMatchups(agg),
		Spellbook:  combos,
	}, nil
}
