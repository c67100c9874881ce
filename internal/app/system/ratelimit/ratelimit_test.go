package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("k") {
			t.Fatalf("attempt %d blocked before limit", i+1)
		}
	}
	if l.Allow("k") {
		t.Error("attempt over limit allowed")
	}
	if !l.Allow("other") {
		t.Error("unrelated key blocked")
	}
}

func TestLimiter_ResetClearsWindow(t *testing.T) {
	l := New(1, time.Minute)

	if !l.Allow("k") {
		t.Fatal("first attempt blocked")
	}
	if l.Allow("k") {
		t.Fatal("second attempt allowed")
	}
	l.Reset("k")
	if !l.Allow("k") {
		t.Error("attempt blocked after reset")
	}
}

func TestClientIP_PrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")

	if got := ClientIP(r); got != "203.0.113.7" {
		t.Errorf("ClientIP: got %q", got)
	}
}

func TestClientIP_FallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("ClientIP: got %q", got)
	}
}

func TestSignInLimiter_EmailBudget(t *testing.T) {
	sl := &SignInLimiter{
		ip:    New(100, time.Minute),
		email: New(2, time.Minute),
	}

	r := httptest.NewRequest("POST", "/account/signin", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	for i := 0; i < 2; i++ {
		if ok, _ := sl.Check(r, "Jane@Example.com"); !ok {
			t.Fatalf("attempt %d blocked before limit", i+1)
		}
	}
	ok, reason := sl.Check(r, "jane@example.com")
	if ok {
		t.Fatal("attempt over email budget allowed")
	}
	if reason == "" {
		t.Error("expected a caller-safe reason")
	}

	sl.ResetEmail("JANE@example.com")
	if ok, _ := sl.Check(r, "jane@example.com"); !ok {
		t.Error("attempt blocked after reset")
	}
}

func TestSignInLimiter_NilAllowsEverything(t *testing.T) {
	var sl *SignInLimiter
	r := httptest.NewRequest("POST", "/account/signin", nil)

	if ok, _ := sl.Check(r, "jane@example.com"); !ok {
		t.Error("nil limiter blocked an attempt")
	}
}
