package handler

import (
	"encoding/json"
	"net/http"

	"github.com/prerna-auth/internal/application/auth"
	"github.com/prerna-auth/internal/domain"
)

// AuthHandler serves the password and OTP login endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err, "Server error during login")
		return
	}
	writeAuth(w, http.StatusOK, "Login successful", res)
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	res, err := h.svc.Signup(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err, "Server error")
		return
	}
	writeAuth(w, http.StatusCreated, "User registered successfully", res)
}

func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	if err := h.svc.SendOTP(r.Context(), req); err != nil {
		writeDomainError(w, r, err, "Failed to send OTP")
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: "OTP sent successfully"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadBody(w)
		return
	}
	res, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err, "Server error while verifying OTP")
		return
	}
	writeAuth(w, http.StatusOK, "OTP verified successfully", res)
}

func writeAuth(w http.ResponseWriter, status int, msg string, res *auth.AuthResult) {
	writeJSON(w, status, AuthEnvelope{
		Success: true,
		Message: msg,
		Token:   res.Token,
		User:    toSafeUser(res.User),
	})
}
