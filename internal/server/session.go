package server

import "github.com/google/uuid"

// GenerateClientID creates a unique connection ID for logs.
func GenerateClientID() string {
	return uuid.NewString()
}
