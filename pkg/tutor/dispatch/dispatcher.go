package dispatch

import (
	"context"
	"strings"

	"tutorai-be/pkg/tutor/pdfctx"
)

// ErrorReplyText replaces the placeholder when the completion request fails.
const ErrorReplyText = "Error: Could not connect to TutorAI. Please try again."

// AskRequest is the body sent to the completion endpoint.
type AskRequest struct {
	Question   string `json:"question"`
	PdfContext string `json:"pdfContext,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

// Completer turns one question into one answer.
type Completer interface {
	Complete(ctx context.Context, req AskRequest) (string, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, req AskRequest) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req AskRequest) (string, error) {
	return f(ctx, req)
}

// Ticket identifies one dispatched question. Seq grows per session.
type Ticket struct {
	SessionID string
	Seq       uint64
	Request   AskRequest
}

// Reply is the finalized AI message text for a ticket.
type Reply struct {
	Text string
	Err  error
}

func (r Reply) Failed() bool {
	return r.Err != nil
}

// Dispatcher builds completion requests and tracks, per session, which
// request is the latest one. Only Send touches the network; Prepare and
// IsLatest are plain state transitions and need external serialization.
type Dispatcher struct {
	completer      Completer
	maxContextChar int
	generations    map[string]uint64
}

type Option func(*Dispatcher)

// WithMaxContextChars truncates PDF context before it is sent. Zero sends it whole.
func WithMaxContextChars(n int) Option {
	return func(d *Dispatcher) {
		d.maxContextChar = n
	}
}

func NewDispatcher(completer Completer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		completer:   completer,
		generations: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Prepare validates the question and issues a ticket. It returns false for a
// question that is empty after trimming; nothing should be sent or recorded then.
func (d *Dispatcher) Prepare(sessionID, question string, pdf *pdfctx.Context) (Ticket, bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Ticket{}, false
	}

	req := AskRequest{Question: question}
	if pdf != nil && pdf.Text != "" {
		req.PdfContext = truncateRunes(pdf.Text, d.maxContextChar)
	}

	d.generations[sessionID]++
	return Ticket{
		SessionID: sessionID,
		Seq:       d.generations[sessionID],
		Request:   req,
	}, true
}

// Send performs exactly one completion call for the ticket.
func (d *Dispatcher) Send(ctx context.Context, t Ticket) Reply {
	answer, err := d.completer.Complete(ctx, t.Request)
	if err != nil {
		return Reply{Text: ErrorReplyText, Err: err}
	}
	return Reply{Text: answer}
}

// IsLatest reports whether no newer ticket has been issued for the session.
func (d *Dispatcher) IsLatest(t Ticket) bool {
	return d.generations[t.SessionID] == t.Seq
}

// Forget drops generation state for a deleted session.
func (d *Dispatcher) Forget(sessionID string) {
	delete(d.generations, sessionID)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
