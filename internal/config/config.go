package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config carries everything the server needs from the environment. Secrets
// are never hardcoded; startup fails when a required value is missing.
type Config struct {
	Port          string
	AllowedOrigin string
	PublicBaseURL string

	StoreBackend string
	DataFile     string // file backend
	RedisURL     string // redis backend
	DatabaseURL  string // postgres backend

	CloudName        string
	CloudinaryKey    string
	CloudinarySecret string
	CloudinaryFolder string

	AdminPassword     string // plaintext, compared in constant time
	AdminPasswordHash string // bcrypt hash, preferred over AdminPassword
	JWTSecret         string

	IDCheckEnabled    bool
	GeminiAPIKey      string
	GoogleCredentials string

	MaxUploadBytes int64
}

// Load reads .env (best effort) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:              getenv("PORT", "3000"),
		AllowedOrigin:     getenv("ALLOWED_ORIGIN", "*"),
		PublicBaseURL:     getenv("PUBLIC_BASE_URL", "http://localhost:3000"),
		StoreBackend:      strings.ToLower(getenv("STORE_BACKEND", BackendFile)),
		DataFile:          getenv("DATA_FILE", "data.json"),
		RedisURL:          os.Getenv("REDIS_URL"),
		DatabaseURL:       firstenv("DB_URL", "DATABASE_URL"),
		CloudName:         os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:     os.Getenv("CLOUDINARY_API_KEY"),
		CloudinarySecret:  os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:  getenv("CLOUDINARY_FOLDER", "swift_verifications"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GoogleCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		MaxUploadBytes:    5 << 20,
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("config: invalid MAX_UPLOAD_BYTES %q", v)
		}
		cfg.MaxUploadBytes = n
	}
	if v := os.Getenv("ID_CHECK_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("config: invalid ID_CHECK_ENABLED %q", v)
		}
		cfg.IDCheckEnabled = b
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config: STORE_BACKEND=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: STORE_BACKEND=postgres requires DB_URL or DATABASE_URL")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.CloudName == "" || c.CloudinaryKey == "" || c.CloudinarySecret == "" {
		return fmt.Errorf("config: CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET are required")
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return fmt.Errorf("config: set ADMIN_PASSWORD_HASH (preferred) or ADMIN_PASSWORD")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.IDCheckEnabled && c.GeminiAPIKey == "" && c.GoogleCredentials == "" {
		return fmt.Errorf("config: ID_CHECK_ENABLED requires GOOGLE_APPLICATION_CREDENTIALS (and optionally GEMINI_API_KEY)")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstenv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
