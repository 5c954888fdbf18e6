package model

import "github.com/google/uuid"

// GenerateUUID creates a new random UUID string.
func GenerateUUID() string {
	return uuid.New().String()
}
