// Package middleware holds the HTTP middleware shared by every route:
// request ids, access logging, panic recovery, CORS, body limits and
// rate limiting.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/poetry-backend/internal/config"
)

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middleware into a single Middleware.
// Chain(mw1, mw2)(handler) is mw1(mw2(handler)): mw1 runs first.
// Nil entries are skipped.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				final = mws[i](final)
			}
		}
		return final
	}
}

// Default is the stack every API route runs behind. The request id is
// assigned first so the access log and panic reports carry it; recovery
// sits inside the logger so a recovered panic is logged as a 500. The body
// limit is left out when maxBodyBytes is not positive.
func Default(logger *slog.Logger, cors config.CORSConfig, maxBodyBytes int64) Middleware {
	var limit Middleware
	if maxBodyBytes > 0 {
		limit = BodyLimit(maxBodyBytes)
	}
	return Chain(
		RequestID(),
		Logger(logger),
		Recovery(logger),
		CORS(cors),
		limit,
	)
}
