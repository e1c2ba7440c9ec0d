package controller

import (
	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IStackController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	SimulateEmail(ctx *fiber.Ctx) error
	ManualUpload(ctx *fiber.Ctx) error
	ImportEmails(ctx *fiber.Ctx) error
}

type stackController struct {
	stackService     service.IStackService
	ingestionService service.IIngestionService
}

func NewStackController(
	stackService service.IStackService,
	ingestionService service.IIngestionService,
) IStackController {
	return &stackController{
		stackService:     stackService,
		ingestionService: ingestionService,
	}
}

func (c *stackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stacks")
	h.Get("", c.GetAll)
	h.Post("/simulateEmail", c.SimulateEmail)
	h.Post("/manualUpload", c.ManualUpload)
	h.Post("/importEmails", c.ImportEmails)
	h.Get("/:id", c.Show)
}

func (c *stackController) GetAll(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	pageSize := ctx.QueryInt("page_size", 20)

	res, err := c.stackService.GetAll(ctx.Context(), page, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all stacks", res))
}

func (c *stackController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequestError("invalid stack id")
	}

	res, err := c.stackService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show stack", res))
}

func (c *stackController) SimulateEmail(ctx *fiber.Ctx) error {
	var req dto.SimulateEmailRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.IngestEmail(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success ingest email", res))
}

func (c *stackController) ManualUpload(ctx *fiber.Ctx) error {
	var req dto.ManualUploadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ingestionService.IngestUpload(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success ingest upload", res))
}

func (c *stackController) ImportEmails(ctx *fiber.Ctx) error {
	res, err := c.ingestionService.ImportEmails(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import emails", res))
}
