package controller

import (
	"context"
	"errors"

	"ai-advising-be/internal/dto"
	"ai-advising-be/internal/pkg/serverutils"
	"ai-advising-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	RegisterWebsocket(app *fiber.App)
	Verify(ctx *fiber.Ctx) error
}

type sessionController struct {
	recommendationService service.IRecommendationService
}

func NewSessionController(recommendationService service.IRecommendationService) ISessionController {
	return &sessionController{
		recommendationService: recommendationService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("verify", c.Verify)
}

func (c *sessionController) RegisterWebsocket(app *fiber.App) {
	app.Get("/ws/verify_session", websocket.New(c.handleWS))
}

func (c *sessionController) Verify(ctx *fiber.Ctx) error {
	var req dto.VerifySessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	sessionId, _ := uuid.Parse(req.SessionId)
	res := c.verify(ctx.Context(), sessionId)
	return ctx.JSON(serverutils.SuccessResponse("Success verify session", res))
}

func (c *sessionController) handleWS(conn *websocket.Conn) {
	defer conn.Close()

	var req dto.VerifySessionRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid verify payload"))
		return
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		conn.WriteJSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
		return
	}

	sessionId, _ := uuid.Parse(req.SessionId)
	res := c.verify(context.Background(), sessionId)
	conn.WriteJSON(serverutils.SuccessResponse("Success verify session", res))
}

// verify collapses the service errors into the three client-facing statuses.
// An unexpected lookup failure reads as not_found rather than leaking
// internals over the socket.
func (c *sessionController) verify(ctx context.Context, sessionId uuid.UUID) *dto.VerifySessionResponse {
	res := &dto.VerifySessionResponse{SessionId: sessionId}

	_, err := c.recommendationService.VerifySession(ctx, sessionId)
	switch {
	case err == nil:
		res.Status = dto.SessionStatusValid
	case errors.Is(err, service.ErrSessionExpired):
		res.Status = dto.SessionStatusExpired
	default:
		res.Status = dto.SessionStatusNotFound
	}
	return res
}
