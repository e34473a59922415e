// Package recovery turns handler panics into the service's JSON error reply.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/agents052025/assistant-be-ios/internal/api/respond"
	"github.com/rs/zerolog"
)

// PanicMessage is the client-facing text of a recovered panic.
const PanicMessage = "Вибачте, сталася помилка. Спробуйте ще раз."

// New returns middleware that logs a recovered panic with its stack on log
// and answers 500 with a respond.ErrorResponse body.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func New(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote", r.RemoteAddr).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				respond.WriteInternalError(w, PanicMessage)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
