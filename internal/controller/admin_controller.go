package controller

import (
	"invoice-processor-be/internal/dto"
	"invoice-processor-be/internal/entity"
	"invoice-processor-be/internal/pkg/serverutils"
	"invoice-processor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetEndpoints(ctx *fiber.Ctx) error
	CreateEndpoint(ctx *fiber.Ctx) error
	UpdateEndpoint(ctx *fiber.Ctx) error
	DeleteEndpoint(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IEndpointService
}

func NewAdminController(service service.IEndpointService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/endpoints")
	h.Get("", c.GetEndpoints)
	h.Post("", c.CreateEndpoint)
	h.Put("/:id", c.UpdateEndpoint)
	h.Delete("/:id", c.DeleteEndpoint)
}

func (c *adminController) GetEndpoints(ctx *fiber.Ctx) error {
	typeFilter := ctx.Query("type")

	var (
		res []*dto.EndpointResponse
		err error
	)
	if typeFilter != "" {
		res, err = c.service.GetByType(ctx.Context(), entity.EndpointType(typeFilter))
	} else {
		res, err = c.service.GetAll(ctx.Context())
	}
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get endpoints", res))
}

func (c *adminController) CreateEndpoint(ctx *fiber.Ctx) error {
	var req dto.CreateEndpointRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create endpoint", res))
}

func (c *adminController) UpdateEndpoint(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequestError("invalid endpoint id")
	}

	var req dto.UpdateEndpointRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update endpoint", res))
}

func (c *adminController) DeleteEndpoint(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewBadRequestError("invalid endpoint id")
	}

	if err := c.service.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete endpoint", nil))
}
