package service

import (
	"context"
	"testing"

	"tutorai-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestPdfExtractRejections(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        []byte
		want        error
	}{
		{name: "wrong type", contentType: "image/png", data: []byte("png"), want: ErrOnlyPdfAllowed},
		{name: "too large", contentType: "application/pdf", data: make([]byte, 11), want: ErrPdfTooLarge},
		{name: "not parseable", contentType: "application/pdf", data: []byte("garbage"), want: ErrPdfProcessing},
	}

	svc := NewPdfService(10, logger.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Extract(context.Background(), "notes.pdf", tt.contentType, tt.data)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
		})
	}
}
