package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBodyLimit(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		tooBig bool
	}{
		{"under limit", "12345", false},
		{"over limit", "123456789", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			})

			req := httptest.NewRequest(http.MethodPost, "/poems", strings.NewReader(tt.body))
			BodyLimit(8)(handler).ServeHTTP(httptest.NewRecorder(), req)

			var maxErr *http.MaxBytesError
			if got := errors.As(readErr, &maxErr); got != tt.tooBig {
				t.Errorf("MaxBytesError = %v, want %v (err %v)", got, tt.tooBig, readErr)
			}
		})
	}
}
