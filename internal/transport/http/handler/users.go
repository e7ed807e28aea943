package handler

import (
	"net/http"

	"github.com/prerna-auth/internal/application/user"
	"github.com/prerna-auth/internal/transport/http/middleware"
)

// UserHandler serves the authenticated profile endpoint.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.svc.Me(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, r, err, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{Success: true, User: toSafeUser(u)})
}
