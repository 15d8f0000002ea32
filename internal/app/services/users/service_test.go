package users

import (
	"context"
	"testing"

	"github.com/qalabs/reporting-demo-api/internal/app/storage/memory"
	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
)

func newService() *Service {
	return New(memory.New(), nil)
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "John Doe", "john@example.com", 25)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected first id 1, got %d", created.ID)
	}
	if !created.Active {
		t.Fatalf("new users start active")
	}

	got, ok, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected user to exist")
	}
	if got.Name != "John Doe" || got.Email != "john@example.com" || got.Age != 25 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []struct {
		name  string
		email string
		age   int
	}{
		{"", "john@example.com", 25},
		{"   ", "john@example.com", 25},
		{"John", "not-an-email", 25},
		{"John", "john@example.com", -1},
		{"John", "john@example.com", 151},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, tc.name, tc.email, tc.age); err == nil {
			t.Errorf("expected create(%q, %q, %d) to fail", tc.name, tc.email, tc.age)
		} else if !apperr.IsValidation(err) {
			t.Errorf("create(%q, %q, %d): expected validation error, got %v", tc.name, tc.email, tc.age, err)
		}
	}

	if count, _ := svc.Count(ctx); count != 0 {
		t.Fatalf("failed creates must not grow the store, count = %d", count)
	}
}

func TestDuplicateEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "John", "john@example.com", 25); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, "Johnny", "john@example.com", 30)
	if err == nil {
		t.Fatalf("expected duplicate email to be rejected")
	}
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}

	if count, _ := svc.Count(ctx); count != 1 {
		t.Fatalf("store size changed on conflict, count = %d", count)
	}
}

func TestGetByEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "John", "john@example.com", 25)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, ok, err := svc.GetByEmail(ctx, "john@example.com")
	if err != nil || !ok {
		t.Fatalf("get by email: ok=%v err=%v", ok, err)
	}
	if got.ID != created.ID {
		t.Fatalf("wrong user: %+v", got)
	}

	// Exact match only.
	if _, ok, _ := svc.GetByEmail(ctx, "JOHN@EXAMPLE.COM"); ok {
		t.Fatalf("email lookup must be case-sensitive")
	}
}

func TestGetAllPreservesInsertionOrder(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	emails := []string{"a@x.io", "b@x.io", "c@x.io"}
	for i, email := range emails {
		if _, err := svc.Create(ctx, "User", email, 20+i); err != nil {
			t.Fatalf("create %s: %v", email, err)
		}
	}

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 users, got %d", len(all))
	}
	for i, u := range all {
		if u.Email != emails[i] {
			t.Fatalf("order broken at %d: %s", i, u.Email)
		}
	}
}

func TestGetActiveAndAdults(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	adult, _ := svc.Create(ctx, "Adult", "adult@example.com", 30)
	if _, err := svc.Create(ctx, "Minor", "minor@example.com", 15); err != nil {
		t.Fatalf("create minor: %v", err)
	}

	if _, err := svc.SetActive(ctx, adult.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := svc.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Minor" {
		t.Fatalf("unexpected active set: %+v", active)
	}

	adults, err := svc.GetAdults(ctx)
	if err != nil {
		t.Fatalf("get adults: %v", err)
	}
	if len(adults) != 1 || adults[0].Name != "Adult" {
		t.Fatalf("unexpected adult set: %+v", adults)
	}
}

func TestApplyPartialUpdate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "John", "john@example.com", 25)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "Johnny"
	updated, err := svc.Apply(ctx, created.ID, Update{Name: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Johnny" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Email != "john@example.com" || updated.Age != 25 {
		t.Fatalf("unsupplied fields changed: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("createdAt must be immutable")
	}
}

func TestApplyInvalidFieldLeavesStateUnchanged(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "John", "john@example.com", 25)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	badAge := -1
	if _, err := svc.Apply(ctx, created.ID, Update{Age: &badAge}); err == nil {
		t.Fatalf("expected invalid age to be rejected")
	}

	got, ok, _ := svc.GetByID(ctx, created.ID)
	if !ok || got.Age != 25 {
		t.Fatalf("failed update mutated state: %+v", got)
	}

	// A mixed update with one invalid field must not apply the valid ones.
	newName := "Johnny"
	badEmail := "nope"
	if _, err := svc.Apply(ctx, created.ID, Update{Name: &newName, Email: &badEmail}); err == nil {
		t.Fatalf("expected invalid email to be rejected")
	}
	got, _, _ = svc.GetByID(ctx, created.ID)
	if got.Name != "John" {
		t.Fatalf("partial write leaked: %+v", got)
	}
}

func TestApplyMissingUser(t *testing.T) {
	svc := newService()

	name := "Ghost"
	_, err := svc.Apply(context.Background(), 42, Update{Name: &name})
	if err == nil || !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "John", "john@example.com", 25)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, _ := svc.Count(ctx)

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, ok, _ := svc.GetByID(ctx, created.ID); ok {
		t.Fatalf("expected user to be gone")
	}
	after, _ := svc.Count(ctx)
	if after != before-1 {
		t.Fatalf("count %d -> %d, want exactly one fewer", before, after)
	}

	if err := svc.Delete(ctx, created.ID); err == nil || !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found on second delete, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "John Doe", "john@example.com", 25); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, "Jane Smith", "jane@test.org", 30); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Case-insensitive substring over the name.
	matches, err := svc.Search(ctx, "JOHN")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "John Doe" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	// Substring over the email.
	matches, _ = svc.Search(ctx, "test.org")
	if len(matches) != 1 || matches[0].Name != "Jane Smith" {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	// A query hitting both name and email yields the user once.
	matches, _ = svc.Search(ctx, "john")
	if len(matches) != 1 {
		t.Fatalf("expected one entry per user, got %d", len(matches))
	}

	// Empty query matches everyone.
	matches, _ = svc.Search(ctx, "")
	if len(matches) != 2 {
		t.Fatalf("empty query should match all, got %d", len(matches))
	}

	matches, _ = svc.Search(ctx, "nobody")
	if len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestSimulateError(t *testing.T) {
	svc := newService()
	if err := svc.SimulateError(context.Background()); err == nil {
		t.Fatalf("SimulateError must always fail")
	}
}

func TestFlakyOperationRates(t *testing.T) {
	ctx := context.Background()

	always := New(memory.New(), nil, WithFlakyRate(1))
	if _, err := always.FlakyOperation(ctx); err == nil {
		t.Fatalf("rate 1 must always fail")
	}

	never := New(memory.New(), nil, WithFlakyRate(0))
	result, err := never.FlakyOperation(ctx)
	if err != nil {
		t.Fatalf("rate 0 must never fail: %v", err)
	}
	if result != "Success" {
		t.Fatalf("unexpected result %q", result)
	}
}
