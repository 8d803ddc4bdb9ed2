package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Source identifies how a deck was obtained.
type Source int

const (
	SourceText Source = iota // parsed from the raw input text
	SourceURL                // fetched from a deck-site API
)

func (s Source) String() string {
	switch s {
	case SourceText:
		return "text"
	case SourceURL:
		return "url"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of deck resolution: the deck plus where it came
// from. Downstream consumers treat both variants identically.
type Resolution struct {
	Source Source
	Deck   *Deck
}

const (
	defaultMoxfieldBaseURL  = "https://api.moxfield.com"
	defaultArchidektBaseURL = "https://archidekt.com/api"

	resolveTimeout = 20 * time.Second
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Resolver turns raw deck input into a Deck. Input containing a recognized
// deck-site URL is resolved against that site's API; anything else, and any
// resolution failure, goes through the plain-text parser.
type Resolver struct {
	// MoxfieldBaseURL and ArchidektBaseURL override the provider API roots,
	// primarily for tests.
	MoxfieldBaseURL  string
	ArchidektBaseURL string

	httpClient *http.Client
	logger     *slog.Logger
}

// NewResolver creates a resolver with default provider endpoints.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		MoxfieldBaseURL:  defaultMoxfieldBaseURL,
		ArchidektBaseURL: defaultArchidektBaseURL,
		httpClient:       &http.Client{Timeout: resolveTimeout},
		logger:           logger,
	}
}

// Resolve resolves raw input into a deck. URL resolution failure is
// non-fatal: the original input falls back to plain-text parsing.
func (r *Resolver) Resolve(ctx context.Context, text string) *Resolution {
	text = strings.TrimSpace(text)

	if raw := firstURL(text, "moxfield.com/decks/"); raw != "" {
		if d, err := r.fetchMoxfield(ctx, raw); err == nil {
			return &Resolution{Source: SourceURL, Deck: d}
		} else {
			r.logger.Warn("moxfield resolution failed, falling back to text", "url", raw, "error", err)
		}
	}
	if raw := firstURL(text, "archidekt.com/decks/"); raw != "" {
		if d, err := r.fetchArchidekt(ctx, raw); err == nil {
			return &Resolution{Source: SourceURL, Deck: d}
		} else {
			r.logger.Warn("archidekt resolution failed, falling back to text", "url", raw, "error", err)
		}
	}

	return &Resolution{Source: SourceText, Deck: ParseText(text)}
}

// firstURL returns the first http(s) URL in text that contains needle.
func firstURL(text, needle string) string {
	m := urlPattern.FindString(text)
	if m != "" && strings.Contains(m, needle) {
		return m
	}
	return ""
}

// deckID extracts the trailing path segment of a deck URL.
func deckID(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse deck URL: %w", err)
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if id == "" {
		return "", fmt.Errorf("no deck ID in URL %q", raw)
	}
	return id, nil
}

// getJSON performs a single GET and decodes the JSON response into v.
func (r *Resolver) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request %s: HTTP %d: %s", rawURL, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", rawURL, err)
	}
	return nil
}
