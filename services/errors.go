package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every way a passkey ceremony can fail. Handlers
// use the kind to pick a status code and a stable client-facing message;
// internal error details never leave the process boundary.
type ErrorKind string

const (
	KindNotAuthenticated   ErrorKind = "not_authenticated"
	KindNoChallenge        ErrorKind = "no_challenge"
	KindUnknownCredential  ErrorKind = "unknown_credential"
	KindVerificationFailed ErrorKind = "verification_failed"
	KindStoreFailure       ErrorKind = "store_failure"
	KindMalformedRequest   ErrorKind = "malformed_request"
)

type CeremonyError struct {
	Kind ErrorKind
	Err  error
}

func (e *CeremonyError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *CeremonyError) Unwrap() error {
	return e.Err
}

func NewCeremonyError(kind ErrorKind, err error) *CeremonyError {
	return &CeremonyError{Kind: kind, Err: err}
}

// KindOf extracts the ceremony error kind, or empty string for errors
// that did not originate from a ceremony step.
func KindOf(err error) ErrorKind {
	var ce *CeremonyError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
