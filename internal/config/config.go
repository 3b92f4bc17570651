package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Security SecurityConfig
	Ai       AIConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type SecurityConfig struct {
	JWTSecret string
	// EncryptionKey protects stored provider API keys. 32 bytes,
	// base64-encoded in the environment. Rotating it orphans every
	// key encrypted under the old value.
	EncryptionKey string
}

type AIConfig struct {
	// GeminiAPIKey is the server-side fallback used by the embedding
	// worker; translation calls always use the caller's own key.
	GeminiAPIKey      string
	EmbeddingProvider string // "gemini", "ollama" or "jina"
	EmbeddingModel    string
	EmbedTopic        string
	OllamaBaseURL     string
	OllamaModel       string
	JinaAPIKey        string
}

type StorageConfig struct {
	UploadDir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "ARIA"),
		},
		Security: SecurityConfig{
			JWTSecret:     getEnv("JWT_SECRET", "default_secret"),
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		},
		Ai: AIConfig{
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			EmbedTopic:        getEnv("EMBED_KNOWLEDGE_TOPIC_NAME", "EMBED_KNOWLEDGE_ENTRY"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			JinaAPIKey:        getEnv("JINA_API_KEY", ""),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "./uploads"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
