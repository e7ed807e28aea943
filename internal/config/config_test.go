package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"STORE_BACKEND", "JWT_EXPIRY_DAYS", "BCRYPT_COST", "OTP_VALIDITY",
		"DYNAMO_TABLE_USERS", "DYNAMO_TABLE_OTPS", "ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, BackendDynamo, cfg.StoreBackend)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5*time.Minute, cfg.OTPValidity)
	assert.Equal(t, "users", cfg.DynamoTables.Users)
	assert.Equal(t, "otps", cfg.DynamoTables.Otps)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Mongo")
	t.Setenv("JWT_EXPIRY_DAYS", "1")
	t.Setenv("OTP_VALIDITY", "90s")
	t.Setenv("SMS_TIMEOUT", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := Load()
	assert.Equal(t, BackendMongo, cfg.StoreBackend)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 90*time.Second, cfg.OTPValidity)
	assert.Equal(t, 10*time.Second, cfg.SMSTimeout, "invalid value falls back to default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWTSecret:    "s3cret",
			StoreBackend: BackendDynamo,
			SMSProvider:  SMSProviderLog,
			BcryptCost:   10,
		}
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.JWTSecret = ""
	assert.ErrorContains(t, c.Validate(), "JWT_SECRET_KEY")

	c = valid()
	c.StoreBackend = "postgres"
	assert.ErrorContains(t, c.Validate(), "STORE_BACKEND")

	c = valid()
	c.SMSProvider = SMSProviderFast2SMS
	assert.ErrorContains(t, c.Validate(), "FAST2SMS_API_KEY")

	c = valid()
	c.BcryptCost = 2
	assert.ErrorContains(t, c.Validate(), "BCRYPT_COST")
}
