package domain

import "time"

// OtpRecord is a pending passcode challenge. Several may exist for one phone
// number; the most recently created one is the one checked on verification.
type OtpRecord struct {
	OtpID       string    `json:"id" bson:"_id"`
	PhoneNumber string    `json:"phonenumber" bson:"phonenumber"`
	CodeHash    string    `json:"-" bson:"otp"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Expired reports whether the record is older than validity at now.
func (o *OtpRecord) Expired(now time.Time, validity time.Duration) bool {
	return now.Sub(o.CreatedAt) > validity
}
