// Package spellbook queries the Commander Spellbook combo database for the
// combos a deck already contains.
package spellbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://backend.commanderspellbook.com"
	requestTimeout = 20 * time.Second
)

// Combo is one combo returned by the find-my-combos endpoint.
type Combo struct {
	ID          string   `json:"id"`
	Description string   `json:"description,omitempty"`
	Uses        []string `json:"uses,omitempty"`
	Produces    []string `json:"produces,omitempty"`
}

// Result is the subset of the find-my-combos response carried into the
// analysis report.
type Result struct {
	Included []Combo `json:"included"`
}

// Client queries the Commander Spellbook API.
type Client struct {
	// BaseURL overrides the API root, primarily for tests.
	BaseURL string

	httpClient *http.Client
}

// NewClient creates a Commander Spellbook client.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type findMyCombosRequest struct {
	Commanders []comboCard `json:"commanders"`
	Main       []comboCard `json:"main"`
}

type comboCard struct {
	Card     string `json:"card"`
	Quantity int    `json:"quantity"`
}

type findMyCombosResponse struct {
	Results struct {
		Included []struct {
			ID       string `json:"id"`
			Uses     []struct {
				Card struct {
					Name string `json:"name"`
				} `json:"card"`
			} `json:"uses"`
			Produces []struct {
				Feature struct {
					Name string `json:"name"`
				} `json:"feature"`
			} `json:"produces"`
		} `json:"included"`
	} `json:"results"`
}

// FindCombos looks up combos fully contained in the deck. Callers treat
// failures as non-fatal; an error simply means the report carries an empty
// combo result.
func (c *Client) FindCombos(ctx context.Context, commanders []string, cards map[string]int) (*Result, error) {
	reqBody := findMyCombosRequest{
		Commanders: make([]comboCard, 0, len(commanders)),
		Main:       make([]comboCard, 0, len(cards)),
	}
	for _, name := range commanders {
		reqBody.Commanders = append(reqBody.Commanders, comboCard{Card: name, Quantity: 1})
	}
	for name, qty := range cards {
		reqBody.Main = append(reqBody.Main, comboCard{Card: name, Quantity: qty})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal combo request: %w", err)
	}

	endpoint := c.BaseURL + "/find-my-combos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("request %s: HTTP %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded findMyCombosResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode combo response: %w", err)
	}

	result := &Result{Included: make([]Combo, 0, len(decoded.Results.Included))}
	for _, combo := range decoded.Results.Included {
		out := Combo{ID: combo.ID}
		for _, u := range combo.Uses {
			out.Uses = append(out.Uses, u.Card.Name)
		}
		for _, p := range combo.Produces {
			out.Produces = append(out.Produces, p.Feature.Name)
		}
		out.Description = strings.Join(out.Produces, ", ")
		result.Included = append(result.Included, out)
	}
	return result, nil
}
