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
	Auth     AuthConfig
	Ai       AIConfig
	Ingest   IngestConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret      string
	TokenAlgorithm string // HS256, HS384 or HS512
}

type AIConfig struct {
	OpenAIAPIKey   string
	LLMProvider    string // "openai" is the only supported backend for now
	LLMModel       string
	EmbeddingModel string
	NumDocuments   int // top-K chunks fetched per retrieval
}

type IngestConfig struct {
	ChunkTopic string
	CorpusDir  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:      getEnv("JWT_SECRET", ""),
			TokenAlgorithm: getEnv("TOKEN_ALGORITHM", "HS256"),
		},
		Ai: AIConfig{
			OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
			LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
			LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-3-large"),
			NumDocuments:   getEnvAsInt("NUM_DOCUMENTS", 3),
		},
		Ingest: IngestConfig{
			ChunkTopic: getEnv("EMBED_CHUNK_TOPIC", "EMBED_DOCUMENT_CHUNK"),
			CorpusDir:  getEnv("CORPUS_DIR", "corpus"),
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
