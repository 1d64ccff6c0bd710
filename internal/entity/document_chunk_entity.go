package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is a passage of corpus text plus its embedding. Source is the
// originating file name and Page its zero-based page index.
type DocumentChunk struct {
	Id        uuid.UUID
	Source    string
	Page      int
	Content   string
	Embedding []float32
	CreatedAt time.Time
}
