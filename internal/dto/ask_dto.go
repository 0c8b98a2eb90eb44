package dto

// AskRequest is the public completion body. PdfContext is optional.
type AskRequest struct {
	Question   string `json:"question"`
	PdfContext string `json:"pdfContext,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type UploadPdfResponse struct {
	Text     string `json:"text"`
	Pages    int    `json:"pages"`
	Filename string `json:"filename"`
}

type PdfErrorResponse struct {
	Error string `json:"error"`
}
