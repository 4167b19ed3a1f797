package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ngmaloney/surf-terminal/internal/apperr"
)

func TestRecoverer_NoPanic(t *testing.T) {
	handler := Recoverer(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRecoverer_Panic_ReturnsJSON500(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	handler := RequestID(Recoverer(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %q", ct)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response body: %v", err)
	}
	if resp.Error.Code != string(apperr.ErrCodeInternalUnexpected) {
		t.Errorf("expected error code %q, got %q", apperr.ErrCodeInternalUnexpected, resp.Error.Code)
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("expected request id req-123, got %q", resp.Error.RequestID)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Errorf("expected one panic log entry, got %d", logs.Len())
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = apperr.GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if _, err := uuid.Parse(seen); err != nil {
		t.Errorf("generated id %q is not a UUID: %v", seen, err)
	}
	if got := rec.Header().Get(RequestIDHeader); got != seen {
		t.Errorf("response header = %q, want %q", got, seen)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "abc" || rec.Header().Get(RequestIDHeader) != "abc" {
		t.Errorf("incoming id not propagated: ctx=%q header=%q", seen, rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestLogger_Levels(t *testing.T) {
	tests := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusNotFound, zapcore.WarnLevel},
		{http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		core, logs := observer.New(zapcore.DebugLevel)
		handler := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/spots", nil))

		entries := logs.All()
		if len(entries) != 1 {
			t.Fatalf("status %d: expected 1 log entry, got %d", tt.status, len(entries))
		}
		if entries[0].Level != tt.level {
			t.Errorf("status %d: level = %s, want %s", tt.status, entries[0].Level, tt.level)
		}
		if got := entries[0].ContextMap()["status"]; got != int64(tt.status) {
			t.Errorf("status field = %v, want %d", got, tt.status)
		}
	}
}

func TestRequestLogger_ImplicitOK(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got := logs.All()[0].ContextMap()["status"]; got != int64(http.StatusOK) {
		t.Errorf("status field = %v, want 200", got)
	}
}
