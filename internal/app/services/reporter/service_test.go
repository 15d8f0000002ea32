package reporter

import (
	"context"
	"testing"

	"github.com/qalabs/reporting-demo-api/internal/app/services/users"
	"github.com/qalabs/reporting-demo-api/internal/app/storage/memory"
)

func TestStartStop(t *testing.T) {
	svc := New(users.New(memory.New(), nil), "@every 1h", nil)
	ctx := context.Background()

	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := svc.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestStopWithoutStart(t *testing.T) {
	svc := New(users.New(memory.New(), nil), "", nil)
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	svc := New(users.New(memory.New(), nil), "not a schedule", nil)
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("expected invalid schedule to be rejected")
	}
}

func TestSnapshotTolerantOfEmptyStore(t *testing.T) {
	svc := New(users.New(memory.New(), nil), "", nil)
	// Must not panic or error on an empty collection.
	svc.Snapshot(context.Background())
}
