package utils

import (
	"fmt"
	"time"

	"moim-api/core/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenScope distinguishes authenticated users from anonymous event members.
type TokenScope string

const (
	ScopeUser   TokenScope = "user"
	ScopeMember TokenScope = "member"
)

// TokenClaims are the JWT claims carried by both user and member tokens.
// Member tokens are scoped to a single event.
type TokenClaims struct {
	UserID  uuid.UUID  `json:"user_id,omitempty"`
	EventID uuid.UUID  `json:"event_id,omitempty"`
	Name    string     `json:"name"`
	Scope   TokenScope `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateUserToken signs a token for an authenticated user.
func GenerateUserToken(userID uuid.UUID, nickname string) (string, error) {
	cfg := config.Get()
	claims := &TokenClaims{
		UserID: userID,
		Name:   nickname,
		Scope:  ScopeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWT.ExpiryHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// GenerateMemberToken signs an event-scoped token for an anonymous member.
func GenerateMemberToken(memberID uuid.UUID, eventID uuid.UUID, name string) (string, error) {
	cfg := config.Get()
	claims := &TokenClaims{
		UserID:  memberID,
		EventID: eventID,
		Name:    name,
		Scope:   ScopeMember,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(cfg.JWT.MemberExpiryHrs) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ParseToken validates a signed token and returns its claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	cfg := config.Get()
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
