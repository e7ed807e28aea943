package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/prerna-auth/internal/domain"
)

// clientKinds are reported as 400 with the error's own message.
var clientKinds = []error{
	domain.ErrBadRequest,
	domain.ErrNotFound,
	domain.ErrUnauthorized,
	domain.ErrConflict,
	domain.ErrExpired,
}

// writeDomainError maps a service error onto the response envelope. Anything
// that is not a client error becomes a 500 carrying serverMsg and the cause.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, serverMsg string) {
	var de *domain.Error
	for _, kind := range clientKinds {
		if errors.Is(err, kind) {
			msg := err.Error()
			if errors.As(err, &de) {
				msg = de.Msg
			}
			writeError(w, http.StatusBadRequest, msg)
			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
	writeJSON(w, http.StatusInternalServerError, MessageEnvelope{Message: serverMsg, Error: err.Error()})
}

func writeBadBody(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, "invalid request body")
}
