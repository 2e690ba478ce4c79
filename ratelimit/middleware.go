package ratelimit

import (
	"math"
	"net/http"
	"strconv"

	"github.com/user/recipefinder-go/apperror"
	"github.com/user/recipefinder-go/logging"
)

// TooManyRequestsMessage is the body message of every rejected call.
const TooManyRequestsMessage = "Too many requests, please try again later"

// Guard returns middleware that admits a request only if gate has a token.
// A rejected request never reaches next, so none of the guarded handler's side
// effects (hashing, persistence, credential changes) happen.
func Guard(gate *Gate, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, remaining := gate.Admit()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(gate.Capacity()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if !allowed {
				retry := int(math.Ceil(gate.RetryAfter().Seconds()))
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				logging.FromContext(r.Context(), log).Warn(r.Context(), "admission gate rejected request",
					"gate", gate.Name(), "path", r.URL.Path)
				apperror.WriteError(w, r, apperror.NewTooManyRequestsError(TooManyRequestsMessage))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
