// Package deck provides the deck model and deck-list resolution from plain
// text or deck-site URLs.
package deck

// Deck is a resolved deck list: a name, the commander names in the order they
// were seen, and the main-deck card quantities keyed by cleaned card name.
type Deck struct {
	Name       string         `json:"name"`
	Commanders []string       `json:"commanders"`
	Cards      map[string]int `json:"cards"`
}

// NewDeck returns an empty deck with the default name.
func NewDeck() *Deck {
	return &Deck{
		Name:       "Untitled",
		Commanders: make([]string, 0),
		Cards:      make(map[string]int),
	}
}

// AddCard adds quantity copies of the named card, accumulating across
// repeated occurrences of the same name.
func (d *Deck) AddCard(name string, quantity int) {
	if name == "" || quantity <= 0 {
		return
	}
	d.Cards[name] += quantity
}

// AddCommander records a commander, skipping duplicates. Every commander is
// also guaranteed a card-map entry: if the name is not already in the main
// deck it is inserted with quantity 1.
func (d *Deck) AddCommander(name string) {
	if name == "" {
		return
	}
	for _, c := range d.Commanders {
		if c == name {
			return
		}
	}
	d.Commanders = append(d.Commanders, name)
	if _, ok := d.Cards[name]; !ok {
		d.Cards[name] = 1
	}
}

// TotalCards returns the sum of all card quantities.
func (d *Deck) TotalCards() int {
	total := 0
	for _, qty := range d.Cards {
		total += qty
	}
	return total
}
