package request

import "encoding/json"

// VerifyRegistrationRequest carries the authenticator's attestation
// response plus the user handle echoed back from the options payload.
type VerifyRegistrationRequest struct {
	Cred   json.RawMessage `json:"cred"`
	Handle string          `json:"handle"`
}

// VerifyAuthenticationRequest carries the authenticator's assertion
// response.
type VerifyAuthenticationRequest struct {
	Cred json.RawMessage `json:"cred"`
}
