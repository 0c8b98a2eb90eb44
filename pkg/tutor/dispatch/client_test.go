package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientCompleteSendsBody(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ask", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "It introduces the topic."})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL + "/")
	answer, err := c.Complete(context.Background(), AskRequest{Question: "What is chapter 1 about?", PdfContext: "Chapter 1..."})

	require.NoError(t, err)
	assert.Equal(t, "It introduces the topic.", answer)
	assert.Equal(t, "What is chapter 1 about?", got["question"])
	assert.Equal(t, "Chapter 1...", got["pdfContext"])
}

func TestHTTPClientCompleteOmitsEmptyContext(t *testing.T) {
	var raw map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
		_, _ = w.Write([]byte(`{"answer":"ok"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).Complete(context.Background(), AskRequest{Question: "hi"})
	require.NoError(t, err)
	_, present := raw["pdfContext"]
	assert.False(t, present)
}

func TestHTTPClientCompleteFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"answer":"Error connecting to AI service."}`},
		{name: "malformed body", status: http.StatusOK, body: `<html>`},
		{name: "missing answer", status: http.StatusOK, body: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL).Complete(context.Background(), AskRequest{Question: "hi"})
			assert.Error(t, err)
		})
	}
}

func TestHTTPClientCompleteTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPClient(url).Complete(context.Background(), AskRequest{Question: "hi"})
	assert.Error(t, err)
}

func TestHTTPClientExtract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload-pdf", r.URL.Path)
		file, header, err := r.FormFile("pdf")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		assert.Equal(t, "notes.pdf", header.Filename)
		assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))
		assert.Equal(t, "%PDF-1.4", string(data))

		_ = json.NewEncoder(w).Encode(Extraction{Text: "Chapter 1...", Pages: 3, Filename: header.Filename})
	}))
	defer srv.Close()

	got, err := NewHTTPClient(srv.URL).Extract(context.Background(), "notes.pdf", []byte("%PDF-1.4"))

	require.NoError(t, err)
	assert.Equal(t, &Extraction{Text: "Chapter 1...", Pages: 3, Filename: "notes.pdf"}, got)
}

func TestHTTPClientExtractCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Error processing PDF file"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL).Extract(context.Background(), "bad.pdf", []byte("x"))

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Status)
	assert.Equal(t, "Error processing PDF file", upstream.Message)
}
