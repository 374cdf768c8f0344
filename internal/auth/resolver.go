package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"chatrelay/backend/internal/models"
)

// Sentinel errors for credential resolution. All of them mean the caller
// must be refused; they never reach the chat core.
var (
	ErrTokenExpired    = errors.New("token expired")
	ErrInvalidToken    = errors.New("invalid token")
	ErrMissingIdentity = errors.New("invalid token payload")
)

// Resolver maps an opaque credential to a canonical user id, or fails.
type Resolver interface {
	Resolve(token string) (string, error)
}

// JWTResolver verifies HS256-signed tokens and extracts the user identity
// from the "user_id" claim, falling back to "sub".
type JWTResolver struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{
		secret: []byte(secret),
		issuer: "chatrelay-service",
		ttl:    72 * time.Hour,
	}
}

func (r *JWTResolver) Resolve(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		userID, _ = claims["sub"].(string)
	}
	if userID == "" {
		return "", ErrMissingIdentity
	}

	return models.CanonicalID(userID), nil
}

// IssueToken signs a new credential for the given user id.
func (r *JWTResolver) IssueToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": models.CanonicalID(userID),
		"exp":     time.Now().Add(r.ttl).Unix(),
		"iss":     r.issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(r.secret)
}
