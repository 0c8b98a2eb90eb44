package controller

import (
	"tutorai-be/internal/pkg/serverutils"
	"tutorai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVideoController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
}

type videoController struct {
	service service.IVideoService
	auth    fiber.Handler
}

func NewVideoController(service service.IVideoService, auth fiber.Handler) IVideoController {
	return &videoController{service: service, auth: auth}
}

func (c *videoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/videos")
	h.Use(c.auth)
	h.Get("", c.Recommend)
}

func (c *videoController) Recommend(ctx *fiber.Ctx) error {
	res, err := c.service.Recommend(ctx.Context(), serverutils.UserID(ctx), ctx.Query("course"))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get videos", res))
}
