package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		apiKey   string
		bearer   string
		byAPIKey bool
		byIP     bool
		want     string
	}{
		{
			name:     "api key header preferred",
			apiKey:   "secret-key-1",
			byAPIKey: true,
			byIP:     true,
			want:     "api:secret-key-1",
		},
		{
			name:     "bearer token fallback",
			bearer:   "Bearer secret-key-2",
			byAPIKey: true,
			want:     "api:secret-key-2",
		},
		{
			name: "ip fallback when no key",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name: "no limiting configured",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/evaluate", nil)
			r.RemoteAddr = "192.0.2.1:54321"
			if tt.apiKey != "" {
				r.Header.Set("X-API-Key", tt.apiKey)
			}
			if tt.bearer != "" {
				r.Header.Set("Authorization", tt.bearer)
			}

			if got := getRateLimitKey(r, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{
			name:       "remote addr",
			remoteAddr: "203.0.113.9:1234",
			want:       "203.0.113.9",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "203.0.113.9:1234",
			xff:        "198.51.100.7, 10.0.0.1",
			want:       "198.51.100.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "203.0.113.9:1234",
			xri:        "198.51.100.8",
			want:       "198.51.100.8",
		},
		{
			name:       "invalid forwarded entries skipped",
			remoteAddr: "203.0.113.9:1234",
			xff:        "not-an-ip, 198.51.100.7",
			want:       "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/health", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}

			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLimiterManagerBurst(t *testing.T) {
	m := NewRateLimiter(60, time.Minute, 3, nil)
	defer m.Close()

	allowed := 0
	for range 10 {
		if m.Allow("ip:192.0.2.1") {
			allowed++
		}
	}

	// The token bucket starts full, so exactly the burst capacity passes.
	if allowed != 3 {
		t.Errorf("allowed = %d, want 3 (burst capacity)", allowed)
	}

	// A different key has its own bucket.
	if !m.Allow("ip:192.0.2.2") {
		t.Error("fresh key should have a full bucket")
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
