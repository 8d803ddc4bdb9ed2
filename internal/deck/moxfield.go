package deck

import (
	"context"
	"fmt"
)

// moxfieldEntry is one card slot in a Moxfield deck payload. Older API
// versions put the name at the top level, newer ones nest it under "card".
type moxfieldEntry struct {
	Count int    `json:"count"`
	Name  string `json:"name"`
	Card  *struct {
		Name string `json:"name"`
	} `json:"card"`
}

func (e *moxfieldEntry) cardName() string {
	if e.Card != nil && e.Card.Name != "" {
		return e.Card.Name
	}
	return e.Name
}

func (e *moxfieldEntry) quantity() int {
	if e.Count <= 0 {
		return 1
	}
	return e.Count
}

// moxfieldDeck covers the deck shapes returned by the v2 and legacy Moxfield
// deck endpoints.
type moxfieldDeck struct {
	Name       string          `json:"name"`
	DeckName   string          `json:"deckName"`
	Commanders []moxfieldEntry `json:"commanders"`
	Boards     map[string]struct {
		Cards map[string]moxfieldEntry `json:"cards"`
	} `json:"boards"`
	Sections []struct {
		Cards []moxfieldEntry `json:"cards"`
	} `json:"sections"`
	Cards []moxfieldEntry `json:"cards"`
}

// fetchMoxfield resolves a Moxfield deck URL via the candidate API endpoints,
// folding whichever payload shape answers into a Deck.
func (r *Resolver) fetchMoxfield(ctx context.Context, rawURL string) (*Deck, error) {
	id, err := deckID(rawURL)
	if err != nil {
		return nil, err
	}

	candidates := []string{
		fmt.Sprintf("%s/v2/decks/%s", r.MoxfieldBaseURL, id),
		fmt.Sprintf("%s/decks/%s", r.MoxfieldBaseURL, id),
	}

	var lastErr error
	for _, endpoint := range candidates {
		var payload moxfieldDeck
		if err := r.getJSON(ctx, endpoint, &payload); err != nil {
			lastErr = err
			continue
		}
		if d := payload.toDeck(id); d != nil {
			return d, nil
		}
		lastErr = fmt.Errorf("no cards in response from %s", endpoint)
	}
	return nil, fmt.Errorf("resolve moxfield deck %s: %w", id, lastErr)
}

// toDeck folds the payload into a Deck, returning nil if no cards were found.
func (m *moxfieldDeck) toDeck(id string) *Deck {
	d := NewDeck()
	switch {
	case m.Name != "":
		d.Name = m.Name
	case m.DeckName != "":
		d.Name = m.DeckName
	default:
		d.Name = "Moxfield_" + id
	}

	if main, ok := m.Boards["mainboard"]; ok {
		for _, entry := range main.Cards {
			d.AddCard(entry.cardName(), entry.quantity())
		}
	}
	if main, ok := m.Boards["main"]; ok && len(d.Cards) == 0 {
		for _, entry := range main.Cards {
			d.AddCard(entry.cardName(), entry.quantity())
		}
	}
	if len(d.Cards) == 0 {
		for _, sec := range m.Sections {
			for _, entry := range sec.Cards {
				d.AddCard(entry.cardName(), entry.quantity())
			}
		}
	}
	if len(d.Cards) == 0 {
		for _, entry := range m.Cards {
			d.AddCard(entry.cardName(), entry.quantity())
		}
	}
	if len(d.Cards) == 0 {
		return nil
	}

	for _, c := range m.Commanders {
		d.AddCommander(c.cardName())
	}
	return d
}
