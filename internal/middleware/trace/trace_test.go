package trace

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/log"
)

func TestWrapAssignsRequestID(t *testing.T) {
	m := NewMiddleware(log.Discard())

	var seen string
	var reqLogger *log.Logger
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		reqLogger = log.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Fatalf("request id = %q", seen)
	}
	if rec.Header().Get(HeaderRequestID) != seen {
		t.Errorf("response header should echo request id")
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d", rec.Code)
	}
	if reqLogger == nil || reqLogger.Component() != log.ComponentTrace {
		t.Errorf("request logger not attached")
	}
	if m.Requests() != 1 {
		t.Errorf("Requests() = %d", m.Requests())
	}
}

func TestWrapReusesInboundRequestID(t *testing.T) {
	m := NewMiddleware(log.Discard())
	var seen string
	h := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "abc123" {
		t.Errorf("request id = %q, want abc123", seen)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, "9.9.9.9:1", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": "5.6.7.8"}, "9.9.9.9:1", "5.6.7.8"},
		{"remote", nil, "9.9.9.9:1234", "9.9.9.9"},
		{"remote without port", nil, "9.9.9.9", "9.9.9.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
