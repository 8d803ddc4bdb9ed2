package labels

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherDeliversRecompiledRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels_config.json")
	if err := SaveDocument(path, DefaultDocument()); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	doc := DefaultDocument()
	doc.CuratedLists["test_list"] = []string{"Island"}
	if err := SaveDocument(path, doc); err != nil {
		t.Fatalf("SaveDocument() rewrite error = %v", err)
	}

	select {
	case rs := <-w.Updates():
		if rs == nil {
			t.Fatal("received nil rule set")
		}
		if lists := rs.CuratedListsFor("Island"); len(lists) == 0 {
			t.Error("reloaded rules missing the new curated list entry")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rule reload")
	}
}

func TestWatcherKeepsRulesOnBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels_config.json")
	if err := SaveDocument(path, DefaultDocument()); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write malformed config: %v", err)
	}

	select {
	case rs := <-w.Updates():
		t.Errorf("unexpected update %v for malformed config", rs)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherClosesUpdatesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels_config.json")
	if err := SaveDocument(path, DefaultDocument()); err != nil {
		t.Fatalf("SaveDocument() error = %v", err)
	}

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	cancel()

	select {
	case _, ok := <-w.Updates():
		if ok {
			t.Error("expected updates channel to close without a value")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("updates channel did not close after cancel")
	}
}
