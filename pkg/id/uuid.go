package id

import (
	"strings"

	"github.com/google/uuid"
)

// GetUUID generates a new dashed UUID
func GetUUID() string {
	return uuid.NewString()
}

// GetUUIDWithoutDashes generates a 32 char hex id, used as the business id
// of every persisted entity.
func GetUUIDWithoutDashes() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
