package controller

import (
	"context"

	"ai-advising-be/internal/pkg/logger"
	"ai-advising-be/internal/pkg/serverutils"
	"ai-advising-be/internal/service"
	ws "ai-advising-be/internal/websocket"
	"ai-advising-be/pkg/progress"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IRecommendationController interface {
	RegisterWebsocket(app *fiber.App)
}

type recommendationController struct {
	recommendationService service.IRecommendationService
	hub                   *ws.Hub
	logger                logger.ILogger
}

func NewRecommendationController(
	recommendationService service.IRecommendationService,
	hub *ws.Hub,
	log logger.ILogger,
) IRecommendationController {
	return &recommendationController{
		recommendationService: recommendationService,
		hub:                   hub,
		logger:                log,
	}
}

func (c *recommendationController) RegisterWebsocket(app *fiber.App) {
	app.Get("/ws/recommendations/:session_id", websocket.New(c.handleWS))
}

// handleWS streams pipeline progress for a session and finishes with the
// recommendation frame. The connection stays registered with the hub until the
// peer disconnects, so every watcher of the session sees the same stream.
func (c *recommendationController) handleWS(conn *websocket.Conn) {
	defer conn.Close()

	sessionId, err := uuid.Parse(conn.Params("session_id"))
	if err != nil {
		conn.WriteJSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid session id"))
		return
	}

	ws.ServeWs(c.hub, conn, sessionId, func() {
		go c.runPipeline(sessionId)
	})
}

// runPipeline drives generation detached from the socket lifetime: a client
// that drops mid-run does not abort the work, and the stored result serves
// any reconnect.
func (c *recommendationController) runPipeline(sessionId uuid.UUID) {
	ctx := context.Background()

	result, err := c.recommendationService.EnsureRecommendations(ctx, sessionId, func(event progress.Event) {
		c.hub.SendProgress(sessionId, event)
	})
	if err != nil {
		c.logger.Error("RecommendationController", "Recommendation pipeline failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return
	}

	c.hub.SendResult(sessionId, result)
}
