package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// User is a registered identity. PhoneNumber is unique and the only external lookup key.
// PasswordHash is empty for accounts created through OTP verification.
type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id" bson:"_id"`
	FullName     string    `json:"fullname" dynamodbav:"fullname" bson:"fullname"`
	PhoneNumber  string    `json:"phonenumber" dynamodbav:"phonenumber" bson:"phonenumber"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash,omitempty" bson:"password_hash,omitempty"`
	Address      string    `json:"address,omitempty" dynamodbav:"address,omitempty" bson:"address,omitempty"`
	Interest     []string  `json:"interest,omitempty" dynamodbav:"interest,omitempty" bson:"interest,omitempty"`
	Age          *int      `json:"age,omitempty" dynamodbav:"age,omitempty" bson:"age,omitempty"`
	Language     string    `json:"language,omitempty" dynamodbav:"language,omitempty" bson:"language,omitempty"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at" bson:"updated_at"`
}

// HasPassword reports whether the account can log in with a password.
func (u *User) HasPassword() bool { return u.PasswordHash != "" }

type SignupRequest struct {
	FullName    string   `json:"fullname" validate:"required"`
	PhoneNumber string   `json:"phonenumber" validate:"required,phone10"`
	Password    string   `json:"password" validate:"required,min=6,max=72"`
	Address     string   `json:"address"`
	Interest    []string `json:"interest"`
	Age         *int     `json:"age" validate:"omitempty,min=0,max=150"`
	Language    string   `json:"language"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phonenumber" validate:"required,phone10"`
	Password    string `json:"password" validate:"required"`
}

type SendOTPRequest struct {
	PhoneNumber string `json:"phonenumber" validate:"required,phone10"`
}

type VerifyOTPRequest struct {
	PhoneNumber string `json:"phonenumber" validate:"required,phone10"`
	OTP         string `json:"otp" validate:"required"`
	FullName    string `json:"fullname"`
}

// UnmarshalJSON accepts otp as either a JSON string or a JSON number, so
// clients that send {"otp":1234} are read the same as {"otp":"1234"}.
func (r *VerifyOTPRequest) UnmarshalJSON(b []byte) error {
	type plain VerifyOTPRequest
	var in struct {
		plain
		OTP json.RawMessage `json:"otp"`
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*r = VerifyOTPRequest(in.plain)
	r.OTP = ""

	raw := bytes.TrimSpace(in.OTP)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return nil
	case raw[0] == '"':
		return json.Unmarshal(raw, &r.OTP)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("otp must be a string or number: %w", err)
	}
	r.OTP = n.String()
	return nil
}
