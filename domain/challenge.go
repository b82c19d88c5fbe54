package domain

import "time"

// Challenge is a one-time nonce issued during options generation. Only
// the most recently created row per user is considered valid; rows are
// deleted once a verification consumes them.
type Challenge struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Value     string     `gorm:"size:255;not null" json:"value"`
	CreatedAt *time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Challenge) TableName() string {
	return "webauthn_challenges"
}
