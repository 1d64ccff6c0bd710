package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/sihanyu03/LawTriposChatbot/internal/dto"
	"github.com/sihanyu03/LawTriposChatbot/internal/service"
)

type fakeAuthService struct {
	token string
	err   error
}

func (s *fakeAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.TokenResponse{Token: s.token}, nil
}

func newAuthApp(svc service.IAuthService) *fiber.App {
	app := fiber.New()
	NewAuthController(svc).RegisterRoutes(app)
	return app
}

func TestLoginSuccessReturnsBareToken(t *testing.T) {
	app := newAuthApp(&fakeAuthService{token: "signed.jwt.token"})

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"username":"alice","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var parsed map[string]any
	assert.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "signed.jwt.token", parsed["token"])
	assert.NotContains(t, parsed, "data")
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newAuthApp(&fakeAuthService{err: service.ErrInvalidCredentials})

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginMissingFields(t *testing.T) {
	app := newAuthApp(&fakeAuthService{token: "never"})

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
