package auth_test

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"chatrelay/backend/internal/auth"
)

const testSecret = "test-secret"

// TestResolver_RoundTrip verifies an issued token resolves back to the
// same canonical user id.
func TestResolver_RoundTrip(t *testing.T) {
	r := auth.NewJWTResolver(testSecret)

	token, err := r.IssueToken("user_42")
	assert.NoError(t, err)

	userID, err := r.Resolve(token)
	assert.NoError(t, err)
	assert.Equal(t, "user_42", userID)
}

// TestResolver_CanonicalizesIdentity verifies brace-wrapped ids are
// canonicalized both at issuance and resolution.
func TestResolver_CanonicalizesIdentity(t *testing.T) {
	r := auth.NewJWTResolver(testSecret)

	token, err := r.IssueToken("{user_42}")
	assert.NoError(t, err)

	userID, err := r.Resolve(token)
	assert.NoError(t, err)
	assert.Equal(t, "user_42", userID)
}

// TestResolver_SubClaimFallback verifies tokens carrying only the standard
// "sub" claim still resolve.
func TestResolver_SubClaimFallback(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user_7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	r := auth.NewJWTResolver(testSecret)
	userID, err := r.Resolve(signed)
	assert.NoError(t, err)
	assert.Equal(t, "user_7", userID)
}

// TestResolver_ExpiredToken verifies an expired token fails with the
// expiry sentinel.
func TestResolver_ExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user_7",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	r := auth.NewJWTResolver(testSecret)
	_, err = r.Resolve(signed)
	assert.ErrorIs(t, err, auth.ErrTokenExpired)
}

// TestResolver_WrongSignature verifies a token signed with another secret
// is rejected.
func TestResolver_WrongSignature(t *testing.T) {
	other := auth.NewJWTResolver("other-secret")
	token, err := other.IssueToken("user_7")
	assert.NoError(t, err)

	r := auth.NewJWTResolver(testSecret)
	_, err = r.Resolve(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

// TestResolver_MissingIdentityClaim verifies a valid token without
// user_id or sub is refused.
func TestResolver_MissingIdentityClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	r := auth.NewJWTResolver(testSecret)
	_, err = r.Resolve(signed)
	assert.ErrorIs(t, err, auth.ErrMissingIdentity)
}

// TestResolver_Garbage verifies an unparsable credential is refused.
func TestResolver_Garbage(t *testing.T) {
	r := auth.NewJWTResolver(testSecret)
	_, err := r.Resolve("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
