package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var ErrEmptyDocument = errors.New("pdf has no pages")

// Document is the plain text of a PDF together with its page count.
type Document struct {
	Text  string
	Pages int
}

// Extract parses data as a PDF and returns its plain text. The parser panics
// on some malformed inputs; those are reported as errors.
func Extract(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	pages := reader.NumPage()
	if pages == 0 {
		return nil, ErrEmptyDocument
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	return &Document{
		Text:  strings.TrimSpace(string(text)),
		Pages: pages,
	}, nil
}
