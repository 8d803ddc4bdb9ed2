// Package cards supplies card metadata, layering the local cache over the
// Scryfall API.
package cards

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ramonehamilton/deck-labeler/internal/scryfall"
	"github.com/ramonehamilton/deck-labeler/internal/storage"
)

// Fetcher fetches card metadata from the remote API.
type Fetcher interface {
	GetCardByName(ctx context.Context, name string) (*scryfall.Card, error)
}

// Cache is the local card store consulted before the API.
type Cache interface {
	Get(ctx context.Context, name string) (*scryfall.Card, error)
	Put(ctx context.Context, name string, card *scryfall.Card) error
}

// Service resolves card metadata cache-first. Cache write failures are
// logged, not returned: a working API lookup is never failed by persistence.
type Service struct {
	fetcher Fetcher
	cache   Cache
	logger  *slog.Logger
}

// NewService creates a card metadata service. cache may be nil to disable
// caching entirely.
func NewService(fetcher Fetcher, cache Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{fetcher: fetcher, cache: cache, logger: logger}
}

// GetCardByName returns metadata for the named card, preferring the cache.
func (s *Service) GetCardByName(ctx context.Context, name string) (*scryfall.Card, error) {
	if s.cache != nil {
		card, err := s.cache.Get(ctx, name)
		if err == nil {
			return card, nil
		}
		if !errors.Is(err, storage.ErrCardNotCached) {
			s.logger.Warn("card cache read failed", "name", name, "error", err)
		}
	}

	card, err := s.fetcher.GetCardByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, name, card); err != nil {
			s.logger.Warn("card cache write failed", "name", name, "error", err)
		}
	}
	return card, nil
}
