package middleware

import (
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Recovery turns a panicking handler into a JSON 500. A ledger write that
// panicked mid-transaction has already had its deferred rollback run, so
// the client may safely retry with the same idempotency key.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				// Let net/http drop the connection quietly.
				panic(rvr)
			}

			log.Ctx(r.Context()).Error().
				Interface("panic", rvr).
				Bytes("stack", debug.Stack()).
				Str("route", routePattern(r)).
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Msg("handler panicked")

			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
