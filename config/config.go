package config

import (
	"os"
	"strconv"

	"github.com/zwelix28/canna-bomb-sub001/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string
	DB   database.Config
	JWT  JWT
	SMTP SMTP
	Push Push
	Redis Redis
}

type JWT struct {
	AccessSecret   string
	Issuer         string
	Audience       string
	AccessTTLHours int
}

// SMTP credentials are optional: when Host is empty the mailer runs as a
// logged no-op and order emails are skipped.
type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	AdminTo  string
}

func (s SMTP) Configured() bool { return s.Host != "" && s.From != "" }

// Push holds the VAPID key pair. Optional: without keys the push channel and
// the public-key endpoint are disabled.
type Push struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string // contact mailto for the push service
}

func (p Push) Configured() bool { return p.VAPIDPublicKey != "" && p.VAPIDPrivateKey != "" }

// Redis is an optional read cache for the admin dashboard. Empty Addr
// disables it.
type Redis struct {
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

func (r Redis) Configured() bool { return r.Addr != "" }

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: database.Config{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
		JWT: JWT{
			AccessSecret:   getEnv("JWT_ACCESS_SECRET", log),
			Issuer:         getEnvDefault("JWT_ISSUER", "canna-bomb"),
			Audience:       getEnvDefault("JWT_AUDIENCE", "canna-bomb-api"),
			AccessTTLHours: atoiDefault(os.Getenv("JWT_ACCESS_TTL_HOURS"), 24),
		},
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     atoiDefault(os.Getenv("SMTP_PORT"), 465),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			AdminTo:  os.Getenv("SMTP_ADMIN_TO"),
		},
		Push: Push{
			VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
			VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
			Subscriber:      getEnvDefault("VAPID_SUBSCRIBER", "mailto:admin@canna-bomb.local"),
		},
		Redis: Redis{
			Addr:       os.Getenv("REDIS_ADDR"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("CACHE_TTL_SECONDS"), 60),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
