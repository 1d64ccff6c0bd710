package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, "HS256", cfg.Auth.TokenAlgorithm)
	assert.Equal(t, "openai", cfg.Ai.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.Ai.LLMModel)
	assert.Equal(t, "text-embedding-3-large", cfg.Ai.EmbeddingModel)
	assert.Equal(t, 3, cfg.Ai.NumDocuments)
	assert.Equal(t, "EMBED_DOCUMENT_CHUNK", cfg.Ingest.ChunkTopic)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("TOKEN_ALGORITHM", "HS512")
	t.Setenv("NUM_DOCUMENTS", "7")

	cfg := Load()

	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, "HS512", cfg.Auth.TokenAlgorithm)
	assert.Equal(t, 7, cfg.Ai.NumDocuments)
}

func TestGetEnvAsIntRejectsGarbage(t *testing.T) {
	t.Setenv("NUM_DOCUMENTS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 3, cfg.Ai.NumDocuments)
}
