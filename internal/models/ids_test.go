package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chatrelay/backend/internal/models"
)

// TestCanonicalID_StripsWrappingBraces verifies that ids wrapped in curly
// braces resolve to the same canonical form as bare ids.
func TestCanonicalID_StripsWrappingBraces(t *testing.T) {
	assert.Equal(t, "u1", models.CanonicalID("{u1}"))
	assert.Equal(t, "u1", models.CanonicalID("u1"))
	assert.Equal(t, "u1", models.CanonicalID("{{u1}}"))
	assert.Equal(t, "", models.CanonicalID("{}"))
}

// TestCanonicalID_LeavesInnerCharactersAlone verifies only wrapping
// delimiters are removed, not braces inside the identifier.
func TestCanonicalID_LeavesInnerCharactersAlone(t *testing.T) {
	assert.Equal(t, "u{1}x", models.CanonicalID("u{1}x"))
}

// TestChatID_Symmetric verifies ChatID(a, b) == ChatID(b, a) for any pair.
func TestChatID_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"u1", "u2"},
		{"alice", "bob"},
		{"9f2c", "0a1b"},
	}

	for _, p := range pairs {
		assert.Equal(t, models.ChatID(p[0], p[1]), models.ChatID(p[1], p[0]))
	}
}

// TestChatID_OrdersAndJoins verifies the lexicographically smaller id
// comes first in the derived key.
func TestChatID_OrdersAndJoins(t *testing.T) {
	assert.Equal(t, "u1_u2", models.ChatID("u2", "u1"))
	assert.Equal(t, "u1_u2", models.ChatID("u1", "u2"))
}

// TestChatID_CanonicalizesBothSides verifies ids differing only by
// wrapping braces derive the same chat key.
func TestChatID_CanonicalizesBothSides(t *testing.T) {
	assert.Equal(t, "u1_u2", models.ChatID("{u1}", "{u2}"))
	assert.Equal(t, models.ChatID("u1", "u2"), models.ChatID("{u1}", "u2"))
}
