package history

import (
	"context"

	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/memory"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/specification"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/unitofwork"
)

// Store persists ordered turn sequences keyed by thread id, with a
// write-through in-memory cache in front of the database.
type Store struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.HistoryCache
}

func NewStore(uowFactory unitofwork.RepositoryFactory, cache *memory.HistoryCache) *Store {
	return &Store{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Load returns the full turn sequence of a thread, oldest first. A missing
// thread is an empty sequence, not an error.
func (s *Store) Load(ctx context.Context, threadId string) ([]*entity.ConversationTurn, error) {
	if turns, found := s.cache.Get(threadId); found {
		return turns, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.TurnRepository().FindAll(ctx,
		specification.ByThreadID{ThreadID: threadId},
		specification.OrderBy{Field: "position", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	s.cache.Save(threadId, turns)
	return turns, nil
}

// ReplaceAll upserts the full turn sequence of a thread in one transaction.
// Concurrent writers race last-write-wins; the system assumes one query in
// flight per session.
func (s *Store) ReplaceAll(ctx context.Context, threadId string, turns []*entity.ConversationTurn) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.TurnRepository().DeleteByThreadId(ctx, threadId); err != nil {
		return err
	}
	if err := uow.TurnRepository().CreateBulk(ctx, turns); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.cache.Save(threadId, turns)
	return nil
}

// Clear hard-deletes every turn of a thread. Used on login so a fresh login
// starts a fresh conversation.
func (s *Store) Clear(ctx context.Context, threadId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.TurnRepository().DeleteByThreadId(ctx, threadId); err != nil {
		return err
	}
	s.cache.Delete(threadId)
	return nil
}
