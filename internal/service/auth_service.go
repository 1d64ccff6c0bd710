package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/sihanyu03/LawTriposChatbot/internal/dto"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/specification"
	"github.com/sihanyu03/LawTriposChatbot/internal/repository/unitofwork"
	"github.com/sihanyu03/LawTriposChatbot/pkg/rag/history"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords so
// the two cases are indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid username or password")

const tokenLifetime = 24 * time.Hour

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	historyStore *history.Store
	jwtSecret    string
	algorithm    string
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, historyStore *history.Store, jwtSecret, algorithm string) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		historyStore: historyStore,
		jwtSecret:    jwtSecret,
		algorithm:    algorithm,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// A fresh login starts a fresh conversation. Clear before issuing the
	// token so a failed wipe never hands out a session over stale history.
	if err := s.historyStore.Clear(ctx, user.Username); err != nil {
		return nil, err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.GetSigningMethod(s.algorithm), jwt.MapClaims{
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Token: signed}, nil
}
