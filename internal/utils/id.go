package utils

import "github.com/google/uuid"

// NewID returns an opaque unique identifier for users, messages, and
// connections. Uniqueness is the requirement here, not unpredictability.
func NewID() string {
	return uuid.NewString()
}
