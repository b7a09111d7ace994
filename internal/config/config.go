package config

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	DBMaxOpen     int
	DBMaxIdle     int
	DBMaxLifetime time.Duration

	PrivateKey  *rsa.PrivateKey
	AccessTTL   time.Duration
	TokenIssuer string
	AdminRole   string

	LogLevel       string
	LogFormat      string
	MigrateOnStart bool
}

// Load reads .env (if present) and the process environment.
// The bool result reports whether a .env file was found.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil

	cfg := &Config{
		Port:           getenv("PORT", "4000"),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		DBMaxOpen:      getint("DB_MAX_OPEN", 25),
		DBMaxIdle:      getint("DB_MAX_IDLE", 25),
		DBMaxLifetime:  time.Duration(getint("DB_MAX_LIFETIME", 300)) * time.Second,
		TokenIssuer:    getenv("TOKEN_ISSUER", "userfront"),
		AdminRole:      getenv("ADMIN_ROLE", "admin"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "console"),
		MigrateOnStart: getbool("MIGRATE_ON_START", true),
	}

	if cfg.DatabaseURL == "" {
		return nil, dotenv, errors.New("config: DATABASE_URL is required")
	}

	ttl, err := ParseTTL(getenv("ACCESS_TTL", ""))
	if err != nil {
		return nil, dotenv, fmt.Errorf("config: ACCESS_TTL: %w", err)
	}
	cfg.AccessTTL = ttl

	key, err := ParsePrivateKey(getenv("RSA_PRIVATE_KEY", ""))
	if err != nil {
		return nil, dotenv, fmt.Errorf("config: RSA_PRIVATE_KEY: %w", err)
	}
	cfg.PrivateKey = key

	return cfg, dotenv, nil
}

// ParsePrivateKey decodes a PEM RSA key. Escaped "\n" sequences are
// expanded so the key can be passed on a single env line.
func ParsePrivateKey(pem string) (*rsa.PrivateKey, error) {
	if pem == "" {
		return nil, errors.New("not set")
	}
	pem = strings.ReplaceAll(pem, `\n`, "\n")
	return jwt.ParseRSAPrivateKeyFromPEM([]byte(pem))
}

// ParseTTL accepts "720h", "15m", "20s", or a bare number of minutes.
// Empty means 30 days.
func ParseTTL(ttlStr string) (time.Duration, error) {
	if ttlStr == "" {
		return 30 * 24 * time.Hour, nil
	}

	if strings.HasSuffix(ttlStr, "m") ||
		strings.HasSuffix(ttlStr, "h") ||
		strings.HasSuffix(ttlStr, "s") {
		return time.ParseDuration(ttlStr)
	}

	// fallback: minutes
	min, err := strconv.Atoi(ttlStr)
	if err != nil {
		return 0, err
	}
	return time.Duration(min) * time.Minute, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getint(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getbool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
