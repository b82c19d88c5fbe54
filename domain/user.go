package domain

import (
	"strings"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

type User struct {
	Id                 uint       `gorm:"primaryKey" json:"id"`
	CreatedAt          *time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          *time.Time `gorm:"default:null" json:"updated_at"`
	Email              string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password           string     `gorm:"size:100;not null" json:"-"`
	GoogleID           string     `gorm:"size:100" json:"google_id"`
	Google2FASecret    string     `json:"-"`
	Is2FAVerified      bool       `gorm:"default:false" json:"is_2fa_verified"`
	WebAuthnUserHandle []byte     `gorm:"size:64" json:"-"`
	Passkeys           []Passkey  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_passkeys"`
}

// WebAuthnID returns the opaque user handle issued at registration time.
// It is never the email or the database id.
func (u User) WebAuthnID() []byte {
	return u.WebAuthnUserHandle
}

func (u User) WebAuthnName() string {
	return u.Email
}

func (u User) WebAuthnDisplayName() string {
	return u.Email
}

func (u User) WebAuthnCredentials() []webauthn.Credential {
	var creds []webauthn.Credential
	for _, p := range u.Passkeys {
		creds = append(creds, webauthn.Credential{
			ID:        p.CredentialID,
			PublicKey: p.PublicKey,
			Transport: p.TransportList(),
			Flags: webauthn.CredentialFlags{
				BackupEligible: p.BackupEligible,
				BackupState:    p.BackupState,
			},
			Authenticator: webauthn.Authenticator{
				AAGUID:    p.AAGUID,
				SignCount: p.SignCount,
			},
		})
	}
	return creds
}

// CredentialDescriptors builds the exclude/allow list entries for the
// user's registered passkeys.
func (u User) CredentialDescriptors() []protocol.CredentialDescriptor {
	var descriptors []protocol.CredentialDescriptor
	for _, p := range u.Passkeys {
		descriptors = append(descriptors, protocol.CredentialDescriptor{
			Type:         protocol.PublicKeyCredentialType,
			CredentialID: p.CredentialID,
			Transport:    p.TransportList(),
		})
	}
	return descriptors
}

// JoinTransports flattens authenticator transport hints into the CSV
// form stored on the passkey row.
func JoinTransports(transports []protocol.AuthenticatorTransport) string {
	var parts []string
	for _, t := range transports {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}
