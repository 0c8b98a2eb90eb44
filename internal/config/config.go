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
	Storage  StorageConfig
	Keys     APIKeys
	Ai       AIConfig
	Tutor    TutorConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string // optional; empty keeps profiles in memory
}

type StorageConfig struct {
	Driver     string // "memory" | "redis" | "sqlite"
	RedisURL   string
	SQLitePath string
	QuotaBytes int
}

type APIKeys struct {
	Groq    string
	YouTube string
}

type AIConfig struct {
	LLMProvider   string // "groq" | "ollama"
	LLMModel      string
	GroqBaseURL   string
	OllamaBaseURL string
	TimeoutSecs   int
}

type TutorConfig struct {
	YouTubeBaseURL     string
	PdfContextMaxChars int
	MaxUploadBytes     int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/tutorai.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			Driver:     getEnv("STORAGE_DRIVER", "memory"),
			RedisURL:   getEnv("REDIS_URL", "redis://localhost:6379"),
			SQLitePath: getEnv("SQLITE_PATH", "tutorai.db"),
			QuotaBytes: getEnvAsInt("STORAGE_QUOTA_BYTES", 5*1024*1024),
		},
		Keys: APIKeys{
			Groq:    getEnv("GROQ_API_KEY", ""),
			YouTube: getEnv("YOUTUBE_API_KEY", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "groq"),
			LLMModel:      getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
			GroqBaseURL:   getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			TimeoutSecs:   getEnvAsInt("LLM_TIMEOUT_SECONDS", 30),
		},
		Tutor: TutorConfig{
			YouTubeBaseURL:     getEnv("YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3"),
			PdfContextMaxChars: getEnvAsInt("PDF_CONTEXT_MAX_CHARS", 12000),
			MaxUploadBytes:     getEnvAsInt("MAX_UPLOAD_BYTES", 10*1024*1024),
		},
		Tracing: TracingConfig{
			Enabled:  getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
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
