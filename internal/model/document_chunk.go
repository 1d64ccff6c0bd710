package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// DocumentChunk is the persistence shape of entity.DocumentChunk. It exists
// separately so the pgvector column type stays out of the domain entity.
type DocumentChunk struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Source    string          `gorm:"index"`
	Page      int
	Content   string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(3072)"`
	CreatedAt time.Time
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
