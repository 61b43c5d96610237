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
	Keys     APIKeys
	Ai       AIConfig
	Rag      RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	DocsPath           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Anthropic    string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "anthropic" or "ollama"
	LLMModel          string
}

type RagConfig struct {
	ChunkSize        int
	ChunkOverlap     int
	MaxResults       int
	MaxHistory       int // exchanges kept per session
	MaxToolRounds    int
	ResolveThreshold float64 // confidence floor for course name resolution
	SearchThreshold  float64 // similarity floor for content search
	SessionBackend   string  // "memory" or "redis"
	IngestTopic      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			DocsPath:           getEnv("COURSE_DOCS_PATH", "./docs"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Anthropic:    getEnv("ANTHROPIC_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "anthropic"),
			LLMModel:          getEnv("LLM_MODEL", "claude-sonnet-4-20250514"),
		},
		Rag: RagConfig{
			ChunkSize:        getEnvAsInt("RAG_CHUNK_SIZE", 800),
			ChunkOverlap:     getEnvAsInt("RAG_CHUNK_OVERLAP", 100),
			MaxResults:       getEnvAsInt("RAG_MAX_RESULTS", 5),
			MaxHistory:       getEnvAsInt("RAG_MAX_HISTORY", 2),
			MaxToolRounds:    getEnvAsInt("RAG_MAX_TOOL_ROUNDS", 2),
			ResolveThreshold: getEnvAsFloat("RAG_RESOLVE_THRESHOLD", 0.35),
			SearchThreshold:  getEnvAsFloat("RAG_SEARCH_THRESHOLD", 0.0),
			SessionBackend:   getEnv("SESSION_BACKEND", "memory"),
			IngestTopic:      getEnv("COURSE_EMBEDDING_TOPIC_NAME", "COURSE_EMBEDDING"),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
