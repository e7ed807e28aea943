package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prerna-auth/internal/domain"
)

// MessageEnvelope is the generic response wrapper. Error is only populated on
// server-side failures.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login, signup and OTP verification responses.
type AuthEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    *SafeUser `json:"user"`
}

// UserEnvelope wraps the profile response.
type UserEnvelope struct {
	Success bool      `json:"success"`
	User    *SafeUser `json:"user"`
}

// SafeUser is the only user shape that leaves the API.
type SafeUser struct {
	ID          string    `json:"_id"`
	FullName    string    `json:"fullname"`
	PhoneNumber string    `json:"phonenumber"`
	Address     string    `json:"address,omitempty"`
	Interest    []string  `json:"interest"`
	Age         *int      `json:"age,omitempty"`
	Language    string    `json:"language,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSafeUser(u *domain.User) *SafeUser {
	if u == nil {
		return nil
	}
	interest := u.Interest
	if interest == nil {
		interest = []string{}
	}
	return &SafeUser{
		ID:          u.UserID,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Interest:    interest,
		Age:         u.Age,
		Language:    u.Language,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Message: msg})
}
