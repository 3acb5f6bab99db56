package auth

import (
	"testing"
	"time"
)

const (
	testKey    = "test-signing-key"
	testIssuer = "dcportal-test"
)

func TestIssueParseRoundtrip(t *testing.T) {
	token, exp, err := Issue("STU1", "student", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if until := time.Until(exp); until < 59*time.Minute || until > time.Hour {
		t.Fatalf("expiry %v not about an hour out", exp)
	}

	claims, err := Parse(token, testKey, testIssuer)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "STU1" || claims.Role != "student" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	token, _, err := Issue("STU1", "student", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, "other-key", testIssuer); err == nil {
		t.Fatal("Parse accepted a token signed with a different key")
	}
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, _, err := Issue("STU1", "student", "someone-else", testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, testKey, testIssuer); err == nil {
		t.Fatal("Parse accepted a token from a different issuer")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, _, err := Issue("STU1", "student", testIssuer, testKey, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(token, testKey, testIssuer); err == nil {
		t.Fatal("Parse accepted an expired token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "hunter2!") {
		t.Fatal("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "hunter3!") {
		t.Fatal("CheckPassword accepted the wrong password")
	}
}
