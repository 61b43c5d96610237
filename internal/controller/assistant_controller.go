package controller

import (
	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/pkg/serverutils"
	"ai-coursechat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	r.Post("/query", c.Query)
	r.Delete("/session/:id", c.ClearSession)
}

func (c *assistantController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// A fresh session id is minted when the client doesn't send one, so
	// follow-up questions can reference the same history.
	if req.SessionId == "" {
		req.SessionId = uuid.NewString()
	}

	res, err := c.service.Query(ctx.Context(), req.SessionId, req.Query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

func (c *assistantController) ClearSession(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	if err := c.service.ClearSession(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear session", dto.ClearSessionResponse{
		SessionId: sessionId,
	}))
}
