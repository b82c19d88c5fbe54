package response

import "github.com/go-webauthn/webauthn/protocol"

// CeremonyResult is the envelope every verification endpoint answers
// with: callers never see raw internal errors.
type CeremonyResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type RegistrationOptionsResponse struct {
	Options *protocol.CredentialCreation `json:"options"`
	Handle  string                       `json:"handle"`
}

type AuthenticationOptionsResponse struct {
	Options *protocol.CredentialAssertion `json:"options"`
}
