package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOtpRecord_Expired(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	rec := &OtpRecord{CreatedAt: created}

	assert.False(t, rec.Expired(created, 5*time.Minute))
	assert.False(t, rec.Expired(created.Add(5*time.Minute), 5*time.Minute), "boundary is still valid")
	assert.True(t, rec.Expired(created.Add(5*time.Minute+time.Millisecond), 5*time.Minute))
}
