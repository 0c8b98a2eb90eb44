package controller

import (
	"errors"
	"io"

	"tutorai-be/internal/constant"
	"tutorai-be/internal/dto"
	"tutorai-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IAskController serves the public proxy endpoints. Bodies follow the
// {answer} / {error} shapes the chat clients expect.
type IAskController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Ask(ctx *fiber.Ctx) error
	UploadPdf(ctx *fiber.Ctx) error
}

type askController struct {
	askService service.IAskService
	pdfService service.IPdfService
}

func NewAskController(askService service.IAskService, pdfService service.IPdfService) IAskController {
	return &askController{askService: askService, pdfService: pdfService}
}

func (c *askController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Health)
	r.Post("/api/ask", c.Ask)
	r.Post("/api/upload-pdf", c.UploadPdf)
}

func (c *askController) Health(ctx *fiber.Ctx) error {
	return ctx.SendString(constant.HealthText)
}

func (c *askController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.AskResponse{Answer: constant.QuestionRequiredText})
	}

	res, err := c.askService.Ask(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrQuestionRequired) {
			return ctx.Status(fiber.StatusBadRequest).JSON(dto.AskResponse{Answer: constant.QuestionRequiredText})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.AskResponse{Answer: constant.AIServiceErrorText})
	}

	return ctx.JSON(res)
}

func (c *askController) UploadPdf(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("pdf")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.PdfErrorResponse{Error: constant.NoPdfUploadedText})
	}

	src, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.PdfErrorResponse{Error: constant.PdfProcessingText})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.PdfErrorResponse{Error: constant.PdfProcessingText})
	}

	res, err := c.pdfService.Extract(ctx.Context(), file.Filename, file.Header.Get("Content-Type"), data)
	switch {
	case errors.Is(err, service.ErrOnlyPdfAllowed):
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.PdfErrorResponse{Error: constant.OnlyPdfAllowedText})
	case errors.Is(err, service.ErrPdfTooLarge):
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.PdfErrorResponse{Error: constant.PdfTooLargeText})
	case err != nil:
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.PdfErrorResponse{Error: constant.PdfProcessingText})
	}

	return ctx.JSON(res)
}
