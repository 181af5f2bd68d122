package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/poetry-backend/pkg/ctxutil"
)

func serveRequestID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/poems", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()

	RequestID()(handler).ServeHTTP(rec, req)

	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_ReuseIncoming(t *testing.T) {
	ctxID, headerID := serveRequestID(t, "client-trace-7")

	if ctxID != "client-trace-7" {
		t.Errorf("expected context id %q, got %q", "client-trace-7", ctxID)
	}
	if headerID != "client-trace-7" {
		t.Errorf("expected header id %q, got %q", "client-trace-7", headerID)
	}
}

func TestRequestID_GenerateNew(t *testing.T) {
	ctxID, headerID := serveRequestID(t, "")

	if _, err := uuid.Parse(ctxID); err != nil {
		t.Errorf("expected generated UUID, got %q: %v", ctxID, err)
	}
	if headerID != ctxID {
		t.Errorf("expected header to echo %q, got %q", ctxID, headerID)
	}
}

func TestRequestID_ReplacesOversizedIncoming(t *testing.T) {
	incoming := strings.Repeat("x", maxRequestIDLength+1)

	ctxID, _ := serveRequestID(t, incoming)

	if ctxID == incoming {
		t.Fatal("expected oversized id to be replaced")
	}
	if _, err := uuid.Parse(ctxID); err != nil {
		t.Errorf("expected generated UUID, got %q: %v", ctxID, err)
	}
}
