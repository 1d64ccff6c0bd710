package unitofwork

import (
	"context"

	"github.com/sihanyu03/LawTriposChatbot/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	TurnRepository() contract.TurnRepository
	ChunkRepository() contract.ChunkRepository
}
