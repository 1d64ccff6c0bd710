package contract

import (
	"context"

	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/specification"
)

type TurnRepository interface {
	// FindAll returns turns matching the given specifications. Callers order
	// by position to reconstruct a thread.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)

	// CreateBulk inserts a batch of turns in one statement.
	CreateBulk(ctx context.Context, turns []*entity.ConversationTurn) error

	// DeleteByThreadId hard-deletes every turn of a thread.
	DeleteByThreadId(ctx context.Context, threadId string) error
}
