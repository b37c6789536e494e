package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionIDFormat(t *testing.T) {
	id := NewSessionID()

	assert.True(t, strings.HasPrefix(id, "session_"))
	parts := strings.Split(id, "_")
	assert.Len(t, parts, 3)
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], 16) // 8 random bytes, hex encoded

	assert.True(t, IsSessionID(id))
}

func TestNewSessionIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsSessionIDRejectsForeignIDs(t *testing.T) {
	assert.False(t, IsSessionID(""))
	assert.False(t, IsSessionID("user-42"))
	assert.False(t, IsSessionID("sess_123"))
}
