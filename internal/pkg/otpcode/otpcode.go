package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	minCode = 1000
	maxCode = 9999
)

// New returns a 4-digit numeric passcode drawn uniformly from [1000, 9999].
func New() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+minCode), nil
}
