package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendDynamo = "dynamo"
	BackendMongo  = "mongo"
)

// SMS providers.
const (
	SMSProviderFast2SMS = "fast2sms"
	SMSProviderSNS      = "sns"
	SMSProviderLog      = "log"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	StoreBackend   string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	MongoURI       string
	MongoDatabase  string

	JWTSecret string
	JWTExpiry time.Duration

	BcryptCost  int
	OTPValidity time.Duration

	SMSProvider    string
	SMSTimeout     time.Duration
	SMSCountryCode string // prefixed to 10-digit numbers for SNS (E.164)
	Fast2SMSURL    string
	Fast2SMSAPIKey string
	Fast2SMSRoute  string
	SNSRegion      string

	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users string
	Otps  string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "8000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendDynamo)),
		AWSRegion:      getEnv("AWS_REGION", "ap-south-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users: getEnv("DYNAMO_TABLE_USERS", "users"),
			Otps:  getEnv("DYNAMO_TABLE_OTPS", "otps"),
		},
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "prerna"),

		JWTSecret: getEnv("JWT_SECRET_KEY", ""),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,

		BcryptCost:  getEnvInt("BCRYPT_COST", 10),
		OTPValidity: getEnvDuration("OTP_VALIDITY", 5*time.Minute),

		SMSProvider:    strings.ToLower(getEnv("SMS_PROVIDER", SMSProviderFast2SMS)),
		SMSTimeout:     getEnvDuration("SMS_TIMEOUT", 10*time.Second),
		SMSCountryCode: getEnv("SMS_COUNTRY_CODE", "+91"),
		Fast2SMSURL:    getEnv("FAST2SMS_URL", "https://www.fast2sms.com/dev/bulkV2"),
		Fast2SMSAPIKey: getEnv("FAST2SMS_API_KEY", ""),
		Fast2SMSRoute:  getEnv("FAST2SMS_ROUTE", "q"),
		SNSRegion:      getEnv("SNS_REGION", "ap-south-1"),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// Validate reports configuration that would make the service unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be set"))
	}
	switch c.StoreBackend {
	case BackendDynamo, BackendMongo:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	switch c.SMSProvider {
	case SMSProviderFast2SMS:
		if c.Fast2SMSAPIKey == "" {
			errs = append(errs, errors.New("FAST2SMS_API_KEY must be set for the fast2sms provider"))
		}
	case SMSProviderSNS, SMSProviderLog:
	default:
		errs = append(errs, fmt.Errorf("unknown SMS_PROVIDER %q", c.SMSProvider))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST %d out of range [4,31]", c.BcryptCost))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration syntax ("5m", "90s").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
