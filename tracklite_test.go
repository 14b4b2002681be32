package tracklite

import (
	"context"
	"testing"
)

func TestNewSeededStore(t *testing.T) {
	store, err := NewSeededStore()
	if err != nil {
		t.Fatalf("NewSeededStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	issues, err := store.ListIssues(ctx, "")
	if err != nil {
		t.Fatalf("ListIssues failed: %v", err)
	}
	if len(issues) != 4 {
		t.Errorf("expected 4 seeded issues, got %d", len(issues))
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Errorf("expected 3 seeded users, got %d", len(users))
	}
}

func TestNewStoreIsEmpty(t *testing.T) {
	store := NewStore()
	defer store.Close()

	issues, err := store.ListIssues(context.Background(), "")
	if err != nil {
		t.Fatalf("ListIssues failed: %v", err)
	}
	if len(issues) != 0 {
		t.Errorf("expected empty store, got %d issues", len(issues))
	}
}
