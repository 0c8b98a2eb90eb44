package service

import (
	"context"
	"errors"
	"mime"

	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/pkg/pdftext"
)

var (
	ErrOnlyPdfAllowed = errors.New("only pdf files are allowed")
	ErrPdfTooLarge    = errors.New("pdf exceeds upload limit")
	ErrPdfProcessing  = errors.New("error processing pdf file")
)

type IPdfService interface {
	Extract(ctx context.Context, filename, contentType string, data []byte) (*dto.UploadPdfResponse, error)
}

type pdfService struct {
	maxBytes int
	logger   logger.ILogger
}

func NewPdfService(maxBytes int, logger logger.ILogger) IPdfService {
	return &pdfService{maxBytes: maxBytes, logger: logger}
}

func (s *pdfService) Extract(_ context.Context, filename, contentType string, data []byte) (*dto.UploadPdfResponse, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/pdf" {
		return nil, ErrOnlyPdfAllowed
	}
	if s.maxBytes > 0 && len(data) > s.maxBytes {
		return nil, ErrPdfTooLarge
	}

	doc, err := pdftext.Extract(data)
	if err != nil {
		s.logger.Error("PDF", "PDF extraction failed", map[string]interface{}{
			"filename": filename,
			"size":     len(data),
			"error":    err.Error(),
		})
		return nil, errors.Join(ErrPdfProcessing, err)
	}

	s.logger.Info("PDF", "PDF extracted", map[string]interface{}{
		"filename": filename,
		"pages":    doc.Pages,
		"chars":    len(doc.Text),
	})
	return &dto.UploadPdfResponse{
		Text:     doc.Text,
		Pages:    doc.Pages,
		Filename: filename,
	}, nil
}
