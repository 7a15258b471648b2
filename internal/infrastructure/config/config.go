package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the service reads from the environment.
// godotenv loads .env in main before this runs, so local development only
// needs a .env file.

type Config struct {
	Port      int
	JWTSecret string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string

	QuotesTable       string
	NotesTable        string
	ActivityLogsTable string
	CountersTable     string

	RedisAddr      string
	PortalCacheTTL time.Duration
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	// Local DynamoDB does not validate credentials, but the AWS SDK
	// requires them.
	v.SetDefault("AWS_ACCESS_KEY_ID", "local")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "local")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("QUOTES_TABLE", "quotes")
	v.SetDefault("QUOTE_NOTES_TABLE", "quote_notes")
	v.SetDefault("ACTIVITY_LOGS_TABLE", "activity_logs")
	v.SetDefault("COUNTERS_TABLE", "counters")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("PORTAL_CACHE_TTL", "60s")

	ttl, err := time.ParseDuration(v.GetString("PORTAL_CACHE_TTL"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:               v.GetInt("PORT"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
		DynamoDBEndpoint:   v.GetString("DYNAMODB_ENDPOINT"),
		QuotesTable:        v.GetString("QUOTES_TABLE"),
		NotesTable:         v.GetString("QUOTE_NOTES_TABLE"),
		ActivityLogsTable:  v.GetString("ACTIVITY_LOGS_TABLE"),
		CountersTable:      v.GetString("COUNTERS_TABLE"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		PortalCacheTTL:     ttl,
	}, nil
}
