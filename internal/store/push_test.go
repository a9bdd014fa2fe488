package store

import (
	"testing"
	"time"
)

func TestPushSubscribeUpsertsByEndpoint(t *testing.T) {
	ps := NewPushStore(setupTestDB(t))

	first, err := ps.Subscribe("https://push.example/abc", "p256dh-1", "auth-1", "Phone")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	second, err := ps.Subscribe("https://push.example/abc", "p256dh-2", "auth-2", "Phone")
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("id changed on resubscribe: %d vs %d", second.ID, first.ID)
	}
	if second.P256dhKey != "p256dh-2" {
		t.Errorf("p256dh = %q, want refreshed key", second.P256dhKey)
	}

	subs, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d subscriptions, want 1", len(subs))
	}
}

func TestPushDeleteByEndpoint(t *testing.T) {
	ps := NewPushStore(setupTestDB(t))

	if _, err := ps.Subscribe("https://push.example/gone", "k", "a", ""); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := ps.DeleteByEndpoint("https://push.example/gone"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	subs, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("got %d subscriptions, want 0", len(subs))
	}
}

func TestSentReminderLog(t *testing.T) {
	ps := NewPushStore(setupTestDB(t))

	sent, err := ps.WasSent("schedule", "gym:2025-03-10", 944)
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if sent {
		t.Fatal("fresh log should report not sent")
	}

	if err := ps.RecordSent("schedule", "gym:2025-03-10", 944); err != nil {
		t.Fatalf("record: %v", err)
	}
	// Recording the same window twice is a no-op, not an error.
	if err := ps.RecordSent("schedule", "gym:2025-03-10", 944); err != nil {
		t.Fatalf("record again: %v", err)
	}

	sent, err = ps.WasSent("schedule", "gym:2025-03-10", 944)
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if !sent {
		t.Fatal("window should report sent after recording")
	}

	// The same checklist on the next day is a different reference.
	sent, err = ps.WasSent("schedule", "gym:2025-03-17", 944)
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if sent {
		t.Fatal("next week's window must not be deduped by this week's")
	}
}

func TestPruneSentBefore(t *testing.T) {
	ps := NewPushStore(setupTestDB(t))

	if err := ps.RecordSent("event", "ev-1:2025-03-10", 1065); err != nil {
		t.Fatalf("record: %v", err)
	}

	// A cutoff in the past keeps the fresh row.
	if err := ps.PruneSentBefore(time.Now().Add(-24 * time.Hour)); err != nil {
		t.Fatalf("prune: %v", err)
	}
	sent, err := ps.WasSent("event", "ev-1:2025-03-10", 1065)
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if !sent {
		t.Fatal("prune with past cutoff removed a fresh row")
	}

	// A future cutoff clears it.
	if err := ps.PruneSentBefore(time.Now().Add(24 * time.Hour)); err != nil {
		t.Fatalf("prune: %v", err)
	}
	sent, err = ps.WasSent("event", "ev-1:2025-03-10", 1065)
	if err != nil {
		t.Fatalf("was sent: %v", err)
	}
	if sent {
		t.Fatal("prune with future cutoff kept the row")
	}
}
