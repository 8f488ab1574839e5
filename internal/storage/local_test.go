package storage

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	exists, err := store.Exists(ctx, "encoder.gob")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("artifact reported present before storing")
	}

	content := "artifact bytes"
	if err := store.Store(ctx, "encoder.gob", strings.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("Store: %v", err)
	}

	exists, err = store.Exists(ctx, "encoder.gob")
	if err != nil {
		t.Fatalf("Exists after store: %v", err)
	}
	if !exists {
		t.Error("stored artifact reported absent")
	}

	rc, err := store.Fetch(ctx, "encoder.gob")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != content {
		t.Errorf("fetched %q, want %q", data, content)
	}
}

func TestLocalStoreFetchMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}

	if _, err := store.Fetch(context.Background(), "missing.gob"); err == nil {
		t.Error("expected error fetching a missing artifact")
	}
}

func TestLocalStoreOverwrite(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Store(ctx, "classifier.gob", strings.NewReader("first"), 5); err != nil {
		t.Fatalf("first Store: %v", err)
	}
	if err := store.Store(ctx, "classifier.gob", strings.NewReader("second"), 6); err != nil {
		t.Fatalf("second Store: %v", err)
	}

	rc, err := store.Fetch(ctx, "classifier.gob")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "second" {
		t.Errorf("fetched %q after overwrite, want %q", data, "second")
	}
}
