package controller

import (
	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/serverutils"
	"tutorai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type profileController struct {
	service service.IProfileService
	auth    fiber.Handler
}

func NewProfileController(service service.IProfileService, auth fiber.Handler) IProfileController {
	return &profileController{service: service, auth: auth}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/profile")
	h.Use(c.auth)
	h.Get("", c.Show)
	h.Put("", c.Update)
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}

func (c *profileController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Set(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update profile", res))
}
