package domain

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	athleteNameMinLength = 2
	athleteNameMaxLength = 100
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AthleteName is a trimmed display name of 2 to 100 characters.
type AthleteName struct {
	value string
}

// NewAthleteName validates and trims raw.
func NewAthleteName(raw string) (AthleteName, error) {
	normalized, err := boundedText("name", raw, athleteNameMinLength, athleteNameMaxLength)
	if err != nil {
		return AthleteName{}, err
	}
	return AthleteName{value: normalized}, nil
}

// String returns the normalized name.
func (n AthleteName) String() string { return n.value }

// Equals compares by normalized value.
func (n AthleteName) Equals(other AthleteName) bool { return n.value == other.value }

// AthleteEmail is a trimmed, lowercased address of the shape local@domain.tld.
type AthleteEmail struct {
	value string
}

// NewAthleteEmail validates raw and normalizes it to lowercase.
func NewAthleteEmail(raw string) (AthleteEmail, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return AthleteEmail{}, NewValidationError("email", "cannot be empty", ErrEmptyValue)
	}
	if !emailPattern.MatchString(normalized) {
		return AthleteEmail{}, NewValidationError("email", "has invalid format", ErrInvalidFormat)
	}
	return AthleteEmail{value: normalized}, nil
}

// String returns the normalized address.
func (e AthleteEmail) String() string { return e.value }

// Equals compares by normalized value.
func (e AthleteEmail) Equals(other AthleteEmail) bool { return e.value == other.value }

// Athlete is the aggregate root for a person who records workout results.
// Its identity and creation time never change; name and email may be replaced
// through ChangeName and ChangeEmail.
type Athlete struct {
	id        AthleteID
	name      AthleteName
	email     AthleteEmail
	createdAt time.Time
}

// NewAthlete creates a fresh Athlete stamped with the current time.
func NewAthlete(id AthleteID, name AthleteName, email AthleteEmail) *Athlete {
	return &Athlete{
		id:        id,
		name:      name,
		email:     email,
		createdAt: time.Now().UTC(),
	}
}

// ReconstituteAthlete rebuilds an Athlete loaded from storage.
func ReconstituteAthlete(id AthleteID, name AthleteName, email AthleteEmail, createdAt time.Time) *Athlete {
	return &Athlete{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
	}
}

// ChangeName replaces the athlete's name.
func (a *Athlete) ChangeName(name AthleteName) {
	a.name = name
}

// ChangeEmail replaces the athlete's email address.
func (a *Athlete) ChangeEmail(email AthleteEmail) {
	a.email = email
}

// ID returns the athlete's identifier.
func (a *Athlete) ID() AthleteID { return a.id }

// Name returns the athlete's display name.
func (a *Athlete) Name() AthleteName { return a.name }

// Email returns the athlete's email address.
func (a *Athlete) Email() AthleteEmail { return a.email }

// CreatedAt returns when the athlete registered, in UTC.
func (a *Athlete) CreatedAt() time.Time { return a.createdAt }

// MarshalJSON renders the athlete for the wire.
func (a *Athlete) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	}{
		ID:        a.id.String(),
		Name:      a.name.String(),
		Email:     a.email.String(),
		CreatedAt: a.createdAt,
	})
}

// boundedText trims raw and checks its rune length against [minLen, maxLen].
func boundedText(field, raw string, minLen, maxLen int) (string, error) {
	normalized := strings.TrimSpace(raw)
	if normalized == "" {
		return "", NewValidationError(field, "cannot be empty", ErrEmptyValue)
	}

	length := utf8.RuneCountInString(normalized)
	if length < minLen {
		return "", NewValidationError(field,
			fmt.Sprintf("must be at least %d characters", minLen), ErrOutOfRange)
	}
	if length > maxLen {
		return "", NewValidationError(field,
			fmt.Sprintf("must not exceed %d characters", maxLen), ErrOutOfRange)
	}

	return normalized, nil
}
