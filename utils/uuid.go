package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string. Every entity in the
// system (users, items, bids, applications, payments) is keyed this way.
func GenerateID() string {
	return uuid.New().String()
}
