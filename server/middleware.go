package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/logging"
)

// requestLogger stores a logger tagged with the chi request id in the request
// context, so services and middleware further down log with the same id.
func requestLogger(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := log
			if id := middleware.GetReqID(r.Context()); id != "" {
				l = l.With("request_id", id)
			}
			next.ServeHTTP(w, r.WithContext(logging.NewContext(r.Context(), l)))
		})
	}
}

// recoverer turns a panic in any handler into the usual 500 envelope.
// `defer func() { ... }()` with `recover()` is the common Go pattern for panic handling.
func recoverer(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				// Let net/http abort the connection as it normally would.
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				logging.FromContext(r.Context(), log).Error(r.Context(), "panic while serving request",
					"path", r.URL.Path, "panic", fmt.Sprintf("%+v", rvr))
				apperror.WriteError(w, r, apperror.NewInternalError("internal server error", nil))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
