package cards

import (
	"context"
	"errors"
	"testing"

	"github.com/ramonehamilton/deck-labeler/internal/scryfall"
	"github.com/ramonehamilton/deck-labeler/internal/storage"
)

type fakeFetcher struct {
	calls int
	card  *scryfall.Card
	err   error
}

func (f *fakeFetcher) GetCardByName(context.Context, string) (*scryfall.Card, error) {
	f.calls++
	return f.card, f.err
}

type memCache struct {
	cards  map[string]*scryfall.Card
	putErr error
}

func newMemCache() *memCache {
	return &memCache{cards: make(map[string]*scryfall.Card)}
}

func (m *memCache) Get(_ context.Context, name string) (*scryfall.Card, error) {
	if card, ok := m.cards[name]; ok {
		return card, nil
	}
	return nil, storage.ErrCardNotCached
}

func (m *memCache) Put(_ context.Context, name string, card *scryfall.Card) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.cards[name] = card
	return nil
}

func TestServiceCacheHitSkipsFetch(t *testing.T) {
	cache := newMemCache()
	cache.cards["Sol Ring"] = &scryfall.Card{Name: "Sol Ring"}
	fetcher := &fakeFetcher{card: &scryfall.Card{Name: "Sol Ring"}}

	svc := NewService(fetcher, cache, nil)
	card, err := svc.GetCardByName(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("GetCardByName() error = %v", err)
	}
	if card.Name != "Sol Ring" {
		t.Errorf("Name = %q", card.Name)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher calls = %d, want 0 on cache hit", fetcher.calls)
	}
}

func TestServiceCacheMissFetchesAndStores(t *testing.T) {
	cache := newMemCache()
	fetcher := &fakeFetcher{card: &scryfall.Card{Name: "Brainstorm"}}

	svc := NewService(fetcher, cache, nil)
	if _, err := svc.GetCardByName(context.Background(), "Brainstorm"); err != nil {
		t.Fatalf("GetCardByName() error = %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}
	if _, ok := cache.cards["Brainstorm"]; !ok {
		t.Error("fetched card was not stored in cache")
	}
}

func TestServiceCacheWriteFailureIsNonFatal(t *testing.T) {
	cache := newMemCache()
	cache.putErr = errors.New("disk full")
	fetcher := &fakeFetcher{card: &scryfall.Card{Name: "Ponder"}}

	svc := NewService(fetcher, cache, nil)
	card, err := svc.GetCardByName(context.Background(), "Ponder")
	if err != nil {
		t.Fatalf("GetCardByName() error = %v, want cache write failure swallowed", err)
	}
	if card.Name != "Ponder" {
		t.Errorf("Name = %q", card.Name)
	}
}

func TestServiceNilCache(t *testing.T) {
	fetcher := &fakeFetcher{card: &scryfall.Card{Name: "Opt"}}

	svc := NewService(fetcher, nil, nil)
	card, err := svc.GetCardByName(context.Background(), "Opt")
	if err != nil {
		t.Fatalf("GetCardByName() error = %v", err)
	}
	if card.Name != "Opt" || fetcher.calls != 1 {
		t.Errorf("card = %+v, calls = %d", card, fetcher.calls)
	}
}
