package utils

import (
	"testing"

	"moim-api/core/config"

	"github.com/google/uuid"
)

func loadTestConfig(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := config.Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
}

func TestUserTokenRoundTrip(t *testing.T) {
	loadTestConfig(t)

	userID := uuid.New()
	token, err := GenerateUserToken(userID, "지은")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != userID || claims.Name != "지은" || claims.Scope != ScopeUser {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.EventID != uuid.Nil {
		t.Errorf("user tokens must not carry an event id, got %s", claims.EventID)
	}
}

func TestMemberTokenCarriesEventScope(t *testing.T) {
	loadTestConfig(t)

	memberID := uuid.New()
	eventID := uuid.New()
	token, err := GenerateMemberToken(memberID, eventID, "민수")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Scope != ScopeMember || claims.EventID != eventID || claims.UserID != memberID {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestParseTokenRejectsTamperedSignature(t *testing.T) {
	loadTestConfig(t)

	token, err := GenerateUserToken(uuid.New(), "지은")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); err == nil {
		t.Error("expected tampered token to be rejected")
	}
}
