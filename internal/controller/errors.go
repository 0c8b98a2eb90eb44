package controller

import (
	"errors"

	"tutorai-be/internal/service"
	"tutorai-be/pkg/tutor/chat"
	"tutorai-be/pkg/tutor/course"
	"tutorai-be/pkg/tutor/workspace"

	"github.com/gofiber/fiber/v2"
)

// toHTTPError maps domain errors onto fiber errors for the error middleware.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Chat session not found")
	case errors.Is(err, course.ErrSlotNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Course slot not found")
	case errors.Is(err, course.ErrSlotLimitReached):
		return fiber.NewError(fiber.StatusConflict, "Maximum 3 courses allowed")
	case errors.Is(err, course.ErrCourseTracked):
		return fiber.NewError(fiber.StatusConflict, "Course is already tracked")
	case errors.Is(err, course.ErrUnknownCourse):
		return fiber.NewError(fiber.StatusBadRequest, "Unknown course")
	case errors.Is(err, course.ErrUnknownTopic):
		return fiber.NewError(fiber.StatusBadRequest, "Topic is not part of this course")
	case errors.Is(err, workspace.ErrNotPDF), errors.Is(err, service.ErrOnlyPdfAllowed):
		return fiber.NewError(fiber.StatusBadRequest, "Only PDF files are allowed")
	case errors.Is(err, workspace.ErrFileTooLarge), errors.Is(err, service.ErrPdfTooLarge):
		return fiber.NewError(fiber.StatusBadRequest, "File size exceeds the 10MB limit")
	case errors.Is(err, workspace.ErrEmptyFile):
		return fiber.NewError(fiber.StatusBadRequest, "Uploaded file is empty")
	case errors.Is(err, service.ErrPdfProcessing):
		return fiber.NewError(fiber.StatusInternalServerError, "Error processing PDF file")
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	return err
}
