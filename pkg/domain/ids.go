// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "onsightnow/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a UserID where a RecordID is expected.
type (
	// UserID identifies a CRM system user (the person launching a meeting).
	UserID uuid.UUID
	// RecordID identifies any CRM record (work order, booking, resource, user).
	RecordID uuid.UUID
)

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseUserID(s string) (UserID, error) {
	id, err := parseUUID(s, "user ID")
	return UserID(id), err
}

func ParseRecordID(s string) (RecordID, error) {
	id, err := parseUUID(s, "record ID")
	return RecordID(id), err
}

// String methods - for logging and record store calls.

func (id UserID) String() string   { return uuid.UUID(id).String() }
func (id RecordID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id RecordID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// parseUUID is the shared validation logic. CRM identifiers arrive both bare
// and brace-wrapped ("{...}"), uuid.Parse accepts either.
func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeValidation, label+" cannot be nil")
	}
	return id, nil
}
