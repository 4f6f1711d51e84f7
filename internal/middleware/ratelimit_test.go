// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimiter_AllowsWithinBudget(t *testing.T) {
	rl := NewRateLimiter(100, 5)
	h := rl.Middleware()(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	h := rl.Middleware()(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()

		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", codes[2])
	}
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	h := rl.Middleware()(okHandler())

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("10.0.0.3:1"); code != http.StatusOK {
		t.Fatalf("first client status = %d, want 200", code)
	}
	if code := send("10.0.0.3:1"); code != http.StatusTooManyRequests {
		t.Fatalf("first client second request = %d, want 429", code)
	}
	// A different client has its own budget.
	if code := send("10.0.0.4:1"); code != http.StatusOK {
		t.Fatalf("second client status = %d, want 200", code)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		realIP     string
		forwarded  string
		remoteAddr string
		want       string
	}{
		{"x-real-ip wins", "1.2.3.4", "5.6.7.8", "9.9.9.9:1", "1.2.3.4"},
		{"x-forwarded-for next", "", "5.6.7.8", "9.9.9.9:1", "5.6.7.8"},
		{"x-forwarded-for chain takes first", "", "5.6.7.8, 10.0.0.1", "9.9.9.9:1", "5.6.7.8"},
		{"remote addr fallback", "", "", "9.9.9.9:1", "9.9.9.9:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}

			if got := clientIP(req); got != tt.want {
				t.Errorf("clientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
