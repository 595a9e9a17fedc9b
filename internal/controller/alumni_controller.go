package controller

import (
	"strconv"

	"ai-advising-be/internal/dto"
	"ai-advising-be/internal/pkg/serverutils"
	"ai-advising-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAlumniController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Count(ctx *fiber.Ctx) error
}

type alumniController struct {
	alumniService service.IAlumniService
}

func NewAlumniController(alumniService service.IAlumniService) IAlumniController {
	return &alumniController{
		alumniService: alumniService,
	}
}

func (c *alumniController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/alumni/v1")
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get("count", c.Count)
}

func (c *alumniController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAlumniRecordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.alumniService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create alumni record", res))
}

func (c *alumniController) List(ctx *fiber.Ctx) error {
	q := ctx.Query("q", "")
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	if page < 1 {
		page = 1
	}

	res, err := c.alumniService.List(ctx.Context(), q, limit, (page-1)*limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list alumni records", res))
}

func (c *alumniController) Count(ctx *fiber.Ctx) error {
	count, err := c.alumniService.Count(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count alumni records", fiber.Map{"count": count}))
}
