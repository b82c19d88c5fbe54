package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUserHandle(t *testing.T) {
	handle, err := GenerateUserHandle()

	assert.NoError(t, err)
	assert.Len(t, handle, 32)
}

func TestGenerateUserHandle_Uniqueness(t *testing.T) {
	h1, err := GenerateUserHandle()
	assert.NoError(t, err)
	h2, err := GenerateUserHandle()
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
