package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyOTPRequest_OTPStringOrNumber(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"string", `{"phonenumber":"9876543210","otp":"1234"}`, "1234"},
		{"number", `{"phonenumber":"9876543210","otp":1234}`, "1234"},
		{"leading zero string", `{"phonenumber":"9876543210","otp":"0123"}`, "0123"},
		{"null", `{"phonenumber":"9876543210","otp":null}`, ""},
		{"absent", `{"phonenumber":"9876543210"}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var req VerifyOTPRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			assert.Equal(t, tc.want, req.OTP)
			assert.Equal(t, "9876543210", req.PhoneNumber)
		})
	}
}

func TestVerifyOTPRequest_KeepsOtherFields(t *testing.T) {
	var req VerifyOTPRequest
	require.NoError(t, json.Unmarshal([]byte(`{"phonenumber":"9876543210","otp":4321,"fullname":"Asha"}`), &req))
	assert.Equal(t, VerifyOTPRequest{PhoneNumber: "9876543210", OTP: "4321", FullName: "Asha"}, req)
}

func TestVerifyOTPRequest_RejectsOtherOTPTypes(t *testing.T) {
	for _, body := range []string{`{"otp":true}`, `{"otp":{"v":1}}`, `{"otp":[1,2]}`} {
		var req VerifyOTPRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}
