package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/sihanyu03/LawTriposChatbot/internal/dto"
	"github.com/sihanyu03/LawTriposChatbot/internal/entity"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/contract"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/memory"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/specification"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/unitofwork"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/history"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, spec := range specs {
		if byUsername, ok := spec.(specification.ByUsername); ok {
			return r.users[byUsername.Username], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, username, hashedPassword string) error {
	if u, ok := r.users[username]; ok {
		u.HashedPassword = hashedPassword
	}
	return nil
}

type fakeTurnRepo struct {
	turnsByThread map[string][]*entity.ConversationTurn
	deletedCalls  []string
}

func (r *fakeTurnRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	for _, spec := range specs {
		if byThread, ok := spec.(specification.ByThreadID); ok {
			return r.turnsByThread[byThread.ThreadID], nil
		}
	}
	return nil, nil
}

func (r *fakeTurnRepo) CreateBulk(_ context.Context, turns []*entity.ConversationTurn) error {
	if len(turns) > 0 {
		r.turnsByThread[turns[0].ThreadId] = turns
	}
	return nil
}

func (r *fakeTurnRepo) DeleteByThreadId(_ context.Context, threadId string) error {
	delete(r.turnsByThread, threadId)
	r.deletedCalls = append(r.deletedCalls, threadId)
	return nil
}

type fakeUow struct {
	users  *fakeUserRepo
	turns  *fakeTurnRepo
	chunks contract.ChunkRepository
}

func (u *fakeUow) Begin(_ context.Context) error             { return nil }
func (u *fakeUow) Commit() error                             { return nil }
func (u *fakeUow) Rollback() error                           { return nil }
func (u *fakeUow) UserRepository() contract.UserRepository   { return u.users }
func (u *fakeUow) TurnRepository() contract.TurnRepository   { return u.turns }
func (u *fakeUow) ChunkRepository() contract.ChunkRepository { return u.chunks }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newAuthFixture(t *testing.T, username, password string) (IAuthService, *fakeTurnRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	users := &fakeUserRepo{users: map[string]*entity.User{
		username: {Id: uuid.New(), Username: username, HashedPassword: string(hash)},
	}}
	turns := &fakeTurnRepo{turnsByThread: map[string][]*entity.ConversationTurn{}}
	factory := &fakeUowFactory{uow: &fakeUow{users: users, turns: turns}}

	historyStore := history.NewStore(factory, memory.NewHistoryCache())
	return NewAuthService(factory, historyStore, "test-secret", "HS256"), turns
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc, _ := newAuthFixture(t, "alice", "pw123")

	res, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	assert.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["username"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")
}

func TestLoginClearsConversationHistory(t *testing.T) {
	svc, turns := newAuthFixture(t, "alice", "pw123")
	turns.turnsByThread["alice"] = []*entity.ConversationTurn{
		{Id: uuid.New(), ThreadId: "alice", Role: "user", Content: "old question"},
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "pw123"})
	assert.NoError(t, err)
	assert.Contains(t, turns.deletedCalls, "alice")
	assert.Empty(t, turns.turnsByThread["alice"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc, turns := newAuthFixture(t, "alice", "pw123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, turns.deletedCalls, "failed logins must not touch history")
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t, "alice", "pw123")

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "mallory", Password: "pw123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
