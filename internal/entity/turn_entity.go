package entity

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is one message of a per-user conversation. Turns are
// append-only and ordered by Position within a thread; the thread id is the
// authenticated username.
type ConversationTurn struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ThreadId string    `gorm:"index"`
	Position int
	Role     string // user, assistant, system or tool
	Content  string `gorm:"type:text"`

	// ToolCallId links a tool turn to the assistant call that requested it.
	// ToolQuery is the model-chosen retrieval query that produced the turn.
	ToolCallId string
	ToolQuery  string

	CreatedAt time.Time
}
