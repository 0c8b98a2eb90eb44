package controller

import (
	"io"
	"net/url"

	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/serverutils"
	"tutorai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	ListSessions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	ActivateSession(ctx *fiber.Ctx) error
	RenameSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	UploadPdf(ctx *fiber.Ctx) error
	GetPdf(ctx *fiber.Ctx) error
	ClearPdf(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Courses(ctx *fiber.Ctx) error
	AddCourse(ctx *fiber.Ctx) error
	DeleteCourse(ctx *fiber.Ctx) error
	MarkTopic(ctx *fiber.Ctx) error
	UnmarkTopic(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type workspaceController struct {
	service service.IWorkspaceService
	auth    fiber.Handler
}

func NewWorkspaceController(service service.IWorkspaceService, auth fiber.Handler) IWorkspaceController {
	return &workspaceController{service: service, auth: auth}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1/workspace")
	h.Use(c.auth)

	h.Get("/sessions", c.ListSessions)
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/:id", c.ShowSession)
	h.Put("/sessions/:id/activate", c.ActivateSession)
	h.Put("/sessions/:id", c.RenameSession)
	h.Delete("/sessions/:id", c.DeleteSession)

	h.Post("/ask", c.Ask)

	h.Post("/pdf", c.UploadPdf)
	h.Get("/pdf", c.GetPdf)
	h.Delete("/pdf", c.ClearPdf)
	h.Post("/logout", c.Logout)

	h.Get("/courses", c.Courses)
	h.Post("/courses", c.AddCourse)
	h.Delete("/courses/:id", c.DeleteCourse)
	h.Post("/courses/:id/topics/:topic", c.MarkTopic)
	h.Delete("/courses/:id/topics/:topic", c.UnmarkTopic)

	h.Get("/stats", c.Stats)
}

func (c *workspaceController) ListSessions(ctx *fiber.Ctx) error {
	res, err := c.service.ListSessions(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat sessions", res))
}

func (c *workspaceController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create chat session", res))
}

func (c *workspaceController) ShowSession(ctx *fiber.Ctx) error {
	res, err := c.service.ShowSession(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show chat session", res))
}

func (c *workspaceController) ActivateSession(ctx *fiber.Ctx) error {
	res, err := c.service.ActivateSession(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success switch chat session", res))
}

func (c *workspaceController) RenameSession(ctx *fiber.Ctx) error {
	var req dto.RenameSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RenameSession(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success rename chat session", res))
}

func (c *workspaceController) DeleteSession(ctx *fiber.Ctx) error {
	res, err := c.service.DeleteSession(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete chat session", res))
}

func (c *workspaceController) Ask(ctx *fiber.Ctx) error {
	var req dto.WorkspaceAskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success ask question", res))
}

func (c *workspaceController) UploadPdf(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("pdf")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No PDF file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	res, err := c.service.UploadPdf(ctx.Context(), serverutils.UserID(ctx), file.Filename, file.Header.Get("Content-Type"), data)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success upload PDF", res))
}

func (c *workspaceController) GetPdf(ctx *fiber.Ctx) error {
	res, err := c.service.GetPdf(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get PDF context", res))
}

func (c *workspaceController) ClearPdf(ctx *fiber.Ctx) error {
	res, err := c.service.ClearPdf(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clear PDF context", res))
}

func (c *workspaceController) Logout(ctx *fiber.Ctx) error {
	if err := c.service.Logout(ctx.Context(), serverutils.UserID(ctx)); err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success logout", nil))
}

func (c *workspaceController) Courses(ctx *fiber.Ctx) error {
	res, err := c.service.Courses(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get courses", res))
}

func (c *workspaceController) AddCourse(ctx *fiber.Ctx) error {
	var req dto.AddCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AddCourse(ctx.Context(), serverutils.UserID(ctx), &req)
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add course", res))
}

func (c *workspaceController) DeleteCourse(ctx *fiber.Ctx) error {
	if err := c.service.DeleteCourse(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id")); err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete course", nil))
}

func (c *workspaceController) MarkTopic(ctx *fiber.Ctx) error {
	res, err := c.service.MarkTopic(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"), topicParam(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success mark topic", res))
}

func (c *workspaceController) UnmarkTopic(ctx *fiber.Ctx) error {
	res, err := c.service.UnmarkTopic(ctx.Context(), serverutils.UserID(ctx), ctx.Params("id"), topicParam(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success unmark topic", res))
}

func (c *workspaceController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context(), serverutils.UserID(ctx))
	if err != nil {
		return toHTTPError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get activity stats", res))
}

// topicParam returns the :topic segment unescaped; Fiber leaves path
// params percent-encoded.
func topicParam(ctx *fiber.Ctx) string {
	raw := ctx.Params("topic")
	topic, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return topic
}
