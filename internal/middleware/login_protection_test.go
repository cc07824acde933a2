package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLoginProtection(maxAttempts int) *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: maxAttempts,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
}

func TestAccountLocksAfterMaxFailures(t *testing.T) {
	lp := testLoginProtection(3)

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt("jane@example.com"); locked {
			t.Fatalf("locked after %d attempts; want unlocked", i+1)
		}
	}

	locked, duration := lp.RecordFailedAttempt("jane@example.com")
	if !locked {
		t.Fatal("expected account to lock on third failure")
	}
	if duration <= 0 {
		t.Errorf("lock duration = %v; want > 0", duration)
	}

	if locked, _ := lp.IsAccountLocked("jane@example.com"); !locked {
		t.Error("IsAccountLocked = false; want true")
	}
}

func TestSuccessfulLoginClearsFailures(t *testing.T) {
	lp := testLoginProtection(3)

	_, _ = lp.RecordFailedAttempt("jane@example.com")
	_, _ = lp.RecordFailedAttempt("jane@example.com")
	lp.RecordSuccessfulLogin("jane@example.com")

	if got := lp.GetRemainingAttempts("jane@example.com"); got != 3 {
		t.Errorf("remaining attempts = %d; want 3", got)
	}
	if locked, _ := lp.IsAccountLocked("jane@example.com"); locked {
		t.Error("account still locked after successful login")
	}
}

func TestRemainingAttemptsCountsDown(t *testing.T) {
	lp := testLoginProtection(5)

	if got := lp.GetRemainingAttempts("jane@example.com"); got != 5 {
		t.Errorf("remaining attempts = %d; want 5", got)
	}
	_, _ = lp.RecordFailedAttempt("jane@example.com")
	if got := lp.GetRemainingAttempts("jane@example.com"); got != 4 {
		t.Errorf("remaining attempts = %d; want 4", got)
	}
}

func TestLockoutsTrackedPerAccount(t *testing.T) {
	lp := testLoginProtection(2)

	_, _ = lp.RecordFailedAttempt("jane@example.com")
	if locked, _ := lp.RecordFailedAttempt("jane@example.com"); !locked {
		t.Fatal("expected lock on second failure with max=2")
	}
	if locked, _ := lp.IsAccountLocked("bob@example.com"); locked {
		t.Error("unrelated account locked")
	}
}

func TestMiddlewareRateLimitsPosts(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       0.001,
		IPBurst:           1,
		MaxFailedAttempts: 5,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
	handler := lp.Middleware()(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/login", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d; want 200", w.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/login", nil)
	second.RemoteAddr = "10.0.0.1:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d; want 429", w.Code)
	}

	// GET requests are not limited
	get := httptest.NewRequest(http.MethodGet, "/login", nil)
	get.RemoteAddr = "10.0.0.1:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, get)
	if w.Code != http.StatusOK {
		t.Errorf("GET request status = %d; want 200", w.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:5000"
	if got := GetClientIP(r); got != "192.0.2.10" {
		t.Errorf("GetClientIP = %q; want 192.0.2.10", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 192.0.2.10")
	if got := GetClientIP(r); got != "203.0.113.7" {
		t.Errorf("GetClientIP with X-Forwarded-For = %q; want 203.0.113.7", got)
	}

	r.Header.Set("X-Real-IP", "198.51.100.2")
	if got := GetClientIP(r); got != "198.51.100.2" {
		t.Errorf("GetClientIP with X-Real-IP = %q; want 198.51.100.2", got)
	}
}
