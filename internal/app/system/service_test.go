package system

import (
	"context"
	"errors"
	"testing"
)

// recordingService appends lifecycle events to a shared journal.
type recordingService struct {
	name     string
	journal  *[]string
	startErr error
	stopErr  error
}

func (s *recordingService) Name() string { return s.name }

func (s *recordingService) Start(context.Context) error {
	*s.journal = append(*s.journal, "start:"+s.name)
	return s.startErr
}

func (s *recordingService) Stop(context.Context) error {
	*s.journal = append(*s.journal, "stop:"+s.name)
	return s.stopErr
}

func TestStartAndStopOrder(t *testing.T) {
	m := NewManager()
	var journal []string

	for _, name := range []string{"a", "b", "c"} {
		if err := m.Register(&recordingService{name: name, journal: &journal}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	want := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(journal) != len(want) {
		t.Fatalf("journal %v", journal)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Fatalf("event %d = %s, want %s", i, journal[i], want[i])
		}
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	m := NewManager()

	if err := m.Register(NoopService{ServiceName: "dup"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Register(NoopService{ServiceName: "dup"}); err == nil {
		t.Fatalf("expected duplicate name to be rejected")
	}
	if err := m.Register(NoopService{}); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
}

func TestRegisterAfterStart(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	if err := m.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Register(NoopService{ServiceName: "late"}); err == nil {
		t.Fatalf("expected registration after start to fail")
	}
	if err := m.Start(ctx); err == nil {
		t.Fatalf("expected second start to fail")
	}
}

func TestStartFailureRollsBack(t *testing.T) {
	m := NewManager()
	var journal []string

	_ = m.Register(&recordingService{name: "a", journal: &journal})
	_ = m.Register(&recordingService{name: "b", journal: &journal, startErr: errors.New("boom")})
	_ = m.Register(&recordingService{name: "c", journal: &journal})

	err := m.Start(context.Background())
	if err == nil {
		t.Fatalf("expected start to fail")
	}

	want := []string{"start:a", "start:b", "stop:a"}
	if len(journal) != len(want) {
		t.Fatalf("journal %v", journal)
	}
	for i := range want {
		if journal[i] != want[i] {
			t.Fatalf("event %d = %s, want %s", i, journal[i], want[i])
		}
	}
}

func TestStopCollectsFirstError(t *testing.T) {
	m := NewManager()
	var journal []string

	_ = m.Register(&recordingService{name: "a", journal: &journal, stopErr: errors.New("a failed")})
	_ = m.Register(&recordingService{name: "b", journal: &journal, stopErr: errors.New("b failed")})

	ctx := context.Background()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	err := m.Stop(ctx)
	if err == nil {
		t.Fatalf("expected stop error")
	}
	// Reverse order means b stops first, so its error wins.
	if got := err.Error(); got != "stop b: b failed" {
		t.Fatalf("unexpected error %q", got)
	}
	if len(journal) != 4 {
		t.Fatalf("journal %v", journal)
	}
}
