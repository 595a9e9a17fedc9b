package controller

import (
	"context"

	"ai-advising-be/internal/dto"
	"ai-advising-be/internal/pkg/serverutils"
	"ai-advising-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	RegisterWebsocket(app *fiber.App)
	Create(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
}

func NewProfileController(profileService service.IProfileService) IProfileController {
	return &profileController{
		profileService: profileService,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Post("", c.Create)
}

func (c *profileController) RegisterWebsocket(app *fiber.App) {
	app.Get("/ws/profile", websocket.New(c.handleWS))
}

func (c *profileController) Create(ctx *fiber.Ctx) error {
	var req dto.StudentInfoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.profileService.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

// handleWS serves the socket variant of intake: one form in, one session
// handle out, then the connection closes.
func (c *profileController) handleWS(conn *websocket.Conn) {
	defer conn.Close()

	var req dto.StudentInfoRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid intake payload"))
		return
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		conn.WriteJSON(serverutils.ErrorResponse(fiber.StatusBadRequest, err.Error()))
		return
	}

	res, err := c.profileService.CreateSession(context.Background(), &req)
	if err != nil {
		conn.WriteJSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, "failed to create session"))
		return
	}

	conn.WriteJSON(serverutils.SuccessResponse("Success create session", res))
}
