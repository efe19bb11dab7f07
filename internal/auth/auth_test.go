package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("correct horse")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")); err == nil {
		t.Fatal("wrong password verified")
	}
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)

	l := limiter.getLimiter("10.0.0.1:1234")
	if !l.Allow() || !l.Allow() {
		t.Fatal("burst of 2 should be allowed")
	}
	if l.Allow() {
		t.Fatal("third immediate request should be limited")
	}

	// A different address gets its own bucket.
	if !limiter.getLimiter("10.0.0.2:1234").Allow() {
		t.Fatal("independent address should not be limited")
	}
}
