package domain

import (
	"strings"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
)

type Passkey struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"` // foreign key
	CredentialID    []byte     `gorm:"not null;unique" json:"credential_id"`
	PublicKey       []byte     `gorm:"not null" json:"public_key"`
	WebauthnUserID  []byte     `gorm:"not null" json:"webauthn_user_id"`
	SignCount       uint32     `gorm:"not null" json:"sign_count"`
	Transports      string     `gorm:"size:255" json:"transports"`
	AAGUID          []byte     `json:"aa_guid"`
	AttestationType string     `json:"attestation_type"`
	BackupEligible  bool       `gorm:"not null;default:false" json:"backup_eligible"`
	BackupState     bool       `gorm:"not null;default:false" json:"backup_state"`
	LastUsedAt      *time.Time `gorm:"default:null" json:"last_used_at"`
	CreatedAt       *time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"default:null" json:"updated_at"`
}

func (Passkey) TableName() string {
	return "user_passkeys"
}

func (p Passkey) TransportList() []protocol.AuthenticatorTransport {
	var transports []protocol.AuthenticatorTransport
	for _, t := range strings.Split(p.Transports, ",") {
		if t == "" {
			continue
		}
		transports = append(transports, protocol.AuthenticatorTransport(t))
	}
	return transports
}
