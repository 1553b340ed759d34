package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/tuanvumaihuynh/graphql-crm/internal/http/apierr"
)

// Recoverer turns a panic into a logged stack trace and a 500 JSON body.
// http.ErrAbortHandler is re-raised so the connection is aborted.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	body, err := json.Marshal(apierr.InternalServerErr)
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if e, ok := rvr.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(rvr)
				}

				log.ErrorContext(r.Context(), "panic",
					slog.Any("recover", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				if r.Header.Get("Connection") != "Upgrade" {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					//nolint:errcheck
					w.Write(body)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
