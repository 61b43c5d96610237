package memory

import (
	"context"
	"fmt"
	"testing"
)

func TestSessionHistoryUnseenId(t *testing.T) {
	repo := NewSessionRepository(2)

	history, err := repo.History(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %+v, want empty", history)
	}
}

func TestSessionAppendAndHistoryOrder(t *testing.T) {
	repo := NewSessionRepository(5)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Append(ctx, "s1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	history, err := repo.History(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d", len(history))
	}
	for i, ex := range history {
		if ex.UserText != fmt.Sprintf("q%d", i) || ex.AssistantText != fmt.Sprintf("a%d", i) {
			t.Errorf("history[%d] = %+v", i, ex)
		}
	}
}

func TestSessionFIFOEviction(t *testing.T) {
	repo := NewSessionRepository(2)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := repo.Append(ctx, "s1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	history, _ := repo.History(ctx, "s1")
	if len(history) != 2 {
		t.Fatalf("history length = %d, want cap 2", len(history))
	}
	// Oldest exchanges evicted first.
	if history[0].UserText != "q2" || history[1].UserText != "q3" {
		t.Errorf("history = %+v", history)
	}
}

func TestSessionIsolation(t *testing.T) {
	repo := NewSessionRepository(2)
	ctx := context.Background()

	repo.Append(ctx, "s1", "q1", "a1")
	repo.Append(ctx, "s2", "q2", "a2")

	h1, _ := repo.History(ctx, "s1")
	h2, _ := repo.History(ctx, "s2")
	if len(h1) != 1 || h1[0].UserText != "q1" {
		t.Errorf("s1 history = %+v", h1)
	}
	if len(h2) != 1 || h2[0].UserText != "q2" {
		t.Errorf("s2 history = %+v", h2)
	}
}

func TestSessionClear(t *testing.T) {
	repo := NewSessionRepository(2)
	ctx := context.Background()

	repo.Append(ctx, "s1", "q", "a")
	if err := repo.Clear(ctx, "s1"); err != nil {
		t.Fatal(err)
	}

	history, _ := repo.History(ctx, "s1")
	if len(history) != 0 {
		t.Errorf("history after clear = %+v", history)
	}

	// Clearing an unseen id is a no-op, not an error.
	if err := repo.Clear(ctx, "never-seen"); err != nil {
		t.Errorf("clear unseen: %v", err)
	}
}
