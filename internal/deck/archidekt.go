package deck

import (
	"context"
	"fmt"
)

// archidektSlot is one card slot in an Archidekt deck payload.
type archidektSlot struct {
	Quantity int    `json:"quantity"`
	CardName string `json:"cardName"`
	Card     *struct {
		Name string `json:"name"`
	} `json:"card"`
}

func (s *archidektSlot) cardName() string {
	if s.Card != nil && s.Card.Name != "" {
		return s.Card.Name
	}
	return s.CardName
}

func (s *archidektSlot) quantity() int {
	if s.Quantity <= 0 {
		return 1
	}
	return s.Quantity
}

type archidektDeck struct {
	Name     string          `json:"name"`
	Cards    []archidektSlot `json:"cards"`
	Slots    []archidektSlot `json:"slots"`
	Metadata *struct {
		CommanderCards []struct {
			CardName string `json:"cardName"`
		} `json:"commanderCards"`
	} `json:"metadata"`
}

// fetchArchidekt resolves an Archidekt deck URL via the public deck API.
func (r *Resolver) fetchArchidekt(ctx context.Context, rawURL string) (*Deck, error) {
	id, err := deckID(rawURL)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/decks/%s", r.ArchidektBaseURL, id)
	var payload archidektDeck
	if err := r.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("resolve archidekt deck %s: %w", id, err)
	}

	d := NewDeck()
	if payload.Name != "" {
		d.Name = payload.Name
	} else {
		d.Name = "Archidekt_" + id
	}

	for _, slot := range payload.Cards {
		d.AddCard(slot.cardName(), slot.quantity())
	}
	if len(d.Cards) == 0 {
		for _, slot := range payload.Slots {
			d.AddCard(slot.cardName(), slot.quantity())
		}
	}
	if len(d.Cards) == 0 {
		return nil, fmt.Errorf("resolve archidekt deck %s: no cards in response", id)
	}

	if payload.Metadata != nil {
		for _, c := range payload.Metadata.CommanderCards {
			d.AddCommander(c.CardName)
		}
	}
	return d, nil
}
