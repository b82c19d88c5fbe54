package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func HashPasswordMock(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return ""
	}
	return string(hash)
}

func TestHashTable(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hash     string
		expected bool
	}{
		{"hash matches correct password", "S3cret!pw", HashPasswordMock("S3cret!pw"), true},
		{"hash does not match incorrect password", "S3cret!pw", HashPasswordMock("S3cret!pq"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := VerifyPassword(tt.password, tt.hash)
			assert.Equal(t, tt.expected, match)
		})
	}
}
