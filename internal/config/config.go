package config

import (
	"os"
	"strconv"
)

type Config struct {
	DB     DBConfig
	JWT    JWTConfig
	Server ServerConfig
	MinIO  MinIOConfig
	Chat   ChatConfig
}

// DBConfig selects the record-store backend: a non-empty URL means
// Postgres, otherwise the JSON file at FilePath backs the store
// (local development only).
type DBConfig struct {
	URL      string
	FilePath string
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type ServerConfig struct {
	Port string
}

// MinIOConfig is optional; with an empty Endpoint avatar uploads are
// disabled rather than failing startup.
type MinIOConfig struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

// ChatConfig carries the client poll interval for the chat view. It is
// advertised to clients, never enforced server-side.
type ChatConfig struct {
	PollSeconds int
}

func Load() *Config {
	return &Config{
		DB: DBConfig{
			URL:      getEnv("DATABASE_URL", ""),
			FilePath: getEnv("LOCAL_DB_PATH", "local-db.json"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		MinIO: MinIOConfig{
			Endpoint:       getEnv("MINIO_ENDPOINT", ""),
			PublicEndpoint: getEnv("MINIO_PUBLIC_ENDPOINT", getEnv("MINIO_ENDPOINT", "")),
			AccessKey:      getEnv("MINIO_ACCESS_KEY", "groupdesk"),
			SecretKey:      getEnv("MINIO_SECRET_KEY", "groupdesk_secret"),
			Bucket:         getEnv("MINIO_BUCKET", "groupdesk-avatars"),
			UseSSL:         getEnvAsBool("MINIO_USE_SSL", false),
		},
		Chat: ChatConfig{
			PollSeconds: getEnvAsInt("CHAT_POLL_SECONDS", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
