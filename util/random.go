package util

import "github.com/hashicorp/go-uuid"

// GenerateUserHandle returns 32 random bytes used as a stable, opaque
// WebAuthn user handle. It carries no PII and is assigned once per user.
func GenerateUserHandle() ([]byte, error) {
	return uuid.GenerateRandomBytes(32)
}

// GenerateStateToken returns an opaque token for OAuth state round trips.
func GenerateStateToken() (string, error) {
	return uuid.GenerateUUID()
}
