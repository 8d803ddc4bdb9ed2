package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ramonehamilton/deck-labeler/internal/scryfall"
)

// ErrCardNotCached indicates a cache miss.
var ErrCardNotCached = errors.New("card not cached")

// CardCache stores fetched card metadata keyed by lower-cased name.
type CardCache struct {
	db  *DB
	ttl time.Duration
}

// NewCardCache creates a card cache over the given database. ttl of zero
// means entries never go stale.
func NewCardCache(db *DB, ttl time.Duration) *CardCache {
	return &CardCache{db: db, ttl: ttl}
}

func cacheKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Get returns the cached card for name, or ErrCardNotCached on a miss or a
// stale entry.
func (c *CardCache) Get(ctx context.Context, name string) (*scryfall.Card, error) {
	var cardJSON string
	var fetchedAt time.Time

	row := c.db.conn.QueryRowContext(ctx,
		`SELECT card_json, fetched_at FROM cards WHERE name_key = ?`, cacheKey(name))
	if err := row.Scan(&cardJSON, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotCached
		}
		return nil, fmt.Errorf("query cached card %q: %w", name, err)
	}

	if c.ttl > 0 && time.Since(fetchedAt) > c.ttl {
		return nil, ErrCardNotCached
	}

	var card scryfall.Card
	if err := json.Unmarshal([]byte(cardJSON), &card); err != nil {
		return nil, fmt.Errorf("decode cached card %q: %w", name, err)
	}
	return &card, nil
}

// Put stores a card under name, replacing any previous entry.
func (c *CardCache) Put(ctx context.Context, name string, card *scryfall.Card) error {
	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("encode card %q: %w", name, err)
	}

	_, err = c.db.conn.ExecContext(ctx,
		`INSERT INTO cards (name_key, card_json, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(name_key) DO UPDATE SET card_json = excluded.card_json, fetched_at = excluded.fetched_at`,
		cacheKey(name), string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store card %q: %w", name, err)
	}
	return nil
}

// Purge removes entries older than the TTL. No-op when the TTL is zero.
func (c *CardCache) Purge(ctx context.Context) (int64, error) {
	if c.ttl <= 0 {
		return 0, nil
	}
	res, err := c.db.conn.ExecContext(ctx,
		`DELETE FROM cards WHERE fetched_at < ?`, time.Now().UTC().Add(-c.ttl))
	if err != nil {
		return 0, fmt.Errorf("purge stale cards: %w", err)
	}
	return res.RowsAffected()
}
