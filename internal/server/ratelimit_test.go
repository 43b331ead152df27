package server

import (
	"net/http/httptest"
	"testing"
)

func TestLimiterManagerAllow(t *testing.T) {
	// 60 requests per minute refills one token per second; burst of 2 means
	// two immediate requests pass and the third is rejected.
	m := NewLimiterManager(60, 2, nil)
	defer m.Close()

	if !m.Allow("client-a") {
		t.Error("Expected first request to be allowed")
	}
	if !m.Allow("client-a") {
		t.Error("Expected second request within burst to be allowed")
	}
	if m.Allow("client-a") {
		t.Error("Expected third request to exceed burst capacity")
	}

	// A different key gets its own bucket
	if !m.Allow("client-b") {
		t.Error("Expected independent key to be allowed")
	}
}

func TestLimiterManagerStats(t *testing.T) {
	m := NewLimiterManager(120, 5, nil)
	defer m.Close()

	m.Allow("key-1")
	m.Allow("key-2")

	stats := m.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("Expected 2 active limiters, got %v", stats["active_limiters"])
	}
	if stats["rate_per_minute"] != 120.0 {
		t.Errorf("Expected rate_per_minute 120, got %v", stats["rate_per_minute"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("Expected burst_capacity 5, got %v", stats["burst_capacity"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		bearer   string
		byAPIKey bool
		byIP     bool
		expected string
	}{
		{
			name:     "api key header preferred",
			apiKey:   "secret-key",
			byAPIKey: true,
			byIP:     true,
			expected: "api:secret-key",
		},
		{
			name:     "bearer token fallback",
			bearer:   "Bearer token-123",
			byAPIKey: true,
			expected: "api:token-123",
		},
		{
			name:     "falls back to ip when no key present",
			byAPIKey: true,
			byIP:     true,
			expected: "ip:192.0.2.1",
		},
		{
			name:     "no limiting dimensions enabled",
			apiKey:   "secret-key",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/ats/analyze", nil)
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.bearer != "" {
				r.Header.Set("Authorization", tt.bearer)
			}

			key := getRateLimitKey(r, tt.byAPIKey, tt.byIP)
			if key != tt.expected {
				t.Errorf("Expected key %q, got %q", tt.expected, key)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		forwarded  string
		realIP     string
		remoteAddr string
		expected   string
	}{
		{
			name:       "x-forwarded-for first valid ip",
			forwarded:  "203.0.113.5, 198.51.100.2",
			remoteAddr: "192.0.2.1:1234",
			expected:   "203.0.113.5",
		},
		{
			name:       "invalid forwarded entries skipped",
			forwarded:  "not-an-ip, 198.51.100.2",
			remoteAddr: "192.0.2.1:1234",
			expected:   "198.51.100.2",
		},
		{
			name:       "x-real-ip fallback",
			realIP:     "203.0.113.9",
			remoteAddr: "192.0.2.1:1234",
			expected:   "203.0.113.9",
		},
		{
			name:       "remote addr host",
			remoteAddr: "192.0.2.7:5678",
			expected:   "192.0.2.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/health", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}

			if ip := getClientIP(r); ip != tt.expected {
				t.Errorf("Expected IP %q, got %q", tt.expected, ip)
			}
		})
	}
}
