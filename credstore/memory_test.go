package credstore

import (
	"context"
	"testing"

	"github.com/goliatone/go-shelf/core"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("fresh store must be empty, ok=%v err=%v", ok, err)
	}

	cred := core.Credential{Access: "access_1", Refresh: "refresh_1"}
	if err := store.Save(ctx, cred); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("expected stored pair to be present")
	}
	if loaded != cred {
		t.Fatalf("expected %+v, got %+v", cred, loaded)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Load(ctx); ok {
		t.Fatalf("cleared store must read absent")
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear must be idempotent: %v", err)
	}
}

func TestMemoryStore_PlaceholderReadsAbsent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, access := range []string{"", "undefined", "null"} {
		if err := store.Save(ctx, core.Credential{Access: access, Refresh: "refresh_1"}); err != nil {
			t.Fatalf("save placeholder %q: %v", access, err)
		}
		if _, ok, err := store.Load(ctx); err != nil || ok {
			t.Fatalf("placeholder access %q must read absent, ok=%v err=%v", access, ok, err)
		}
	}
}
