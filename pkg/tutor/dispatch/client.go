package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

var ErrMalformedResponse = errors.New("malformed response body")

// UpstreamError is a non-2xx answer from the proxy. Message is the server's
// error text when it sent one.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.Status)
}

// Extraction is the result of server-side PDF text extraction.
type Extraction struct {
	Text     string `json:"text"`
	Pages    int    `json:"pages"`
	Filename string `json:"filename"`
}

// Extractor uploads a PDF and returns its text.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (*Extraction, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(ctx context.Context, filename string, data []byte) (*Extraction, error)

func (f ExtractorFunc) Extract(ctx context.Context, filename string, data []byte) (*Extraction, error) {
	return f(ctx, filename, data)
}

// HTTPClient talks to the TutorAI proxy. It implements both Completer and Extractor.
type HTTPClient struct {
	BaseURL string
	Client  *http.Client
}

var (
	_ Completer = (*HTTPClient)(nil)
	_ Extractor = (*HTTPClient)(nil)
)

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *HTTPClient) Complete(ctx context.Context, req AskRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/ask", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	body, err := c.do(httpReq)
	if err != nil {
		return "", err
	}

	var resp AskResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Answer == "" {
		return "", ErrMalformedResponse
	}
	return resp.Answer, nil
}

func (c *HTTPClient) Extract(ctx context.Context, filename string, data []byte) (*Extraction, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="pdf"; filename=%q`, filename))
	header.Set("Content-Type", "application/pdf")
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/upload-pdf", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	var out Extraction
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tutorai request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error  string `json:"error"`
			Answer string `json:"answer"`
		}
		_ = json.Unmarshal(body, &payload)
		msg := payload.Error
		if msg == "" {
			msg = payload.Answer
		}
		return nil, &UpstreamError{Status: resp.StatusCode, Message: msg}
	}
	return body, nil
}
