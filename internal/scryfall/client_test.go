package scryfall

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestGetCardByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/named" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("exact"); got != "Sol Ring" {
			t.Errorf("exact query = %q, want %q", got, "Sol Ring")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"name": "Sol Ring",
			"type_line": "Artifact",
			"oracle_text": "{T}: Add {C}{C}.",
			"cmc": 1,
			"produced_mana": ["C"],
			"legalities": {"commander": "legal"}
		}`))
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL

	card, err := client.GetCardByName(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("GetCardByName() error = %v", err)
	}

	if card.Name != "Sol Ring" {
		t.Errorf("Name = %q, want %q", card.Name, "Sol Ring")
	}
	if card.TypeLine != "Artifact" {
		t.Errorf("TypeLine = %q, want %q", card.TypeLine, "Artifact")
	}
	if card.CMC == nil || *card.CMC != 1 {
		t.Errorf("CMC = %v, want 1", card.CMC)
	}
	if card.Legalities.Commander != "legal" {
		t.Errorf("Legalities.Commander = %q, want legal", card.Legalities.Commander)
	}
}

func TestGetCardByNameNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"object":"error","status":404}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL

	_, err := client.GetCardByName(context.Background(), "Not A Card")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
	if nf.Name != "Not A Card" {
		t.Errorf("NotFoundError.Name = %q, want %q", nf.Name, "Not A Card")
	}
}

func TestGetCardByNameRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Island", "type_line": "Basic Land — Island", "legalities": {"commander": "legal"}}`))
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL

	card, err := client.GetCardByName(context.Background(), "Island")
	if err != nil {
		t.Fatalf("GetCardByName() error = %v", err)
	}
	if card.Name != "Island" {
		t.Errorf("Name = %q, want %q", card.Name, "Island")
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("request count = %d, want 2", got)
	}
}
