// Package user defines the user entity and its validation rules.
package user

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	apperr "github.com/qalabs/reporting-demo-api/internal/errors"
)

const (
	// MaxNameLength bounds the trimmed user name.
	MaxNameLength = 100
	// MinAge and MaxAge bound the accepted age range, inclusive.
	MinAge = 0
	MaxAge = 150
	// AdultAge is the threshold for IsAdult.
	AdultAge = 18
)

// fallbackDisplayName is returned by DisplayName when the name is empty.
const fallbackDisplayName = "Unknown User"

// emailPattern requires local@domain.tld with no whitespace or extra @ runs.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is an in-memory user record. The store assigns ID and CreatedAt;
// neither is ever reassigned.
type User struct {
	ID        int64
	Name      string
	Email     string
	Age       int
	CreatedAt time.Time
	Active    bool
}

// New builds a user with the given identity and fields. Callers are expected
// to validate fields first; the store is the only caller.
func New(id int64, name, email string, age int) User {
	return User{
		ID:        id,
		Name:      name,
		Email:     email,
		Age:       age,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
}

// ValidateEmail reports whether the value looks like local@domain.tld.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateAge reports whether the age lies in [MinAge, MaxAge].
func ValidateAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// ValidateName reports whether the trimmed name is non-empty and at most
// MaxNameLength characters. The limit counts characters, not bytes.
func ValidateName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && utf8.RuneCountInString(trimmed) <= MaxNameLength
}

// IsAdult reports whether the user is at least AdultAge years old.
func (u *User) IsAdult() bool {
	return u.Age >= AdultAge
}

// DisplayName returns the user name, or a fixed label when it is empty.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return fallbackDisplayName
}

// UpdateEmail replaces the email after validating it. The user is left
// unchanged on failure.
func (u *User) UpdateEmail(email string) error {
	if !ValidateEmail(email) {
		return apperr.Validation("invalid email format")
	}
	u.Email = email
	return nil
}

// UpdateAge replaces the age after validating it. The user is left unchanged
// on failure.
func (u *User) UpdateAge(age int) error {
	if !ValidateAge(age) {
		return apperr.Validation("invalid age")
	}
	u.Age = age
	return nil
}

// Activate marks the user active.
func (u *User) Activate() { u.Active = true }

// Deactivate marks the user inactive.
func (u *User) Deactivate() { u.Active = false }

// MarshalJSON serializes the user with the derived isAdult flag.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		Age       int       `json:"age"`
		CreatedAt time.Time `json:"createdAt"`
		IsActive  bool      `json:"isActive"`
		IsAdult   bool      `json:"isAdult"`
	}{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
		IsActive:  u.Active,
		IsAdult:   u.IsAdult(),
	})
}
