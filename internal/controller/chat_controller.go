package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sihanyu03/LawTriposChatbot/internal/dto"
	"github.com/sihanyu03/LawTriposChatbot/internal/pkg/serverutils"
	"github.com/sihanyu03/LawTriposChatbot/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetAnswer(ctx *fiber.Ctx) error
	GetResponse(ctx *fiber.Ctx) error
}

type chatController struct {
	service       service.IChatService
	jwtMiddleware fiber.Handler
}

func NewChatController(service service.IChatService, jwtMiddleware fiber.Handler) IChatController {
	return &chatController{
		service:       service,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/get-answer", c.jwtMiddleware, c.GetAnswer)
	r.Get("/get-response", c.GetResponse)
}

func (c *chatController) GetAnswer(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Invalid request body"))
	}
	if strings.TrimSpace(req.Query) == "" {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Query must not be empty"))
	}

	username, _ := ctx.Locals("username").(string)
	if username == "" {
		return ctx.Status(fiber.StatusUnauthorized).
			JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	res, err := c.service.GetAnswer(ctx.Context(), username, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) GetResponse(ctx *fiber.Ctx) error {
	req := dto.QueryRequest{Query: ctx.Query("query")}
	if strings.TrimSpace(req.Query) == "" {
		return ctx.Status(fiber.StatusBadRequest).
			JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "Query must not be empty"))
	}

	res, err := c.service.GetResponse(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
