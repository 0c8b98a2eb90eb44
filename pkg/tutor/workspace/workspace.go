package workspace

import (
	"context"
	"errors"
	"mime"
	"sync"
	"time"

	"tutorai-be/internal/pkg/logger"
	"tutorai-be/pkg/storage"
	"tutorai-be/pkg/tutor/chat"
	"tutorai-be/pkg/tutor/course"
	"tutorai-be/pkg/tutor/dispatch"
	"tutorai-be/pkg/tutor/pdfctx"
)

const logModule = "Workspace"

const (
	PDFMimeType    = "application/pdf"
	MaxUploadBytes = 10 * 1024 * 1024
)

var (
	ErrNotPDF       = errors.New("only PDF files are allowed")
	ErrFileTooLarge = errors.New("file size exceeds the 10MB limit")
	ErrEmptyFile    = errors.New("uploaded file is empty")
)

// Workspace is the application state of one owner: chat sessions, course
// slots, PDF context and dispatch, all persisted through one adapter.
//
// Every method holds mu while it touches state. Ask and UploadPDF release it
// across the network call so other operations keep running while a request is
// in flight.
type Workspace struct {
	mu sync.Mutex

	owner      string
	adapter    *storage.Adapter
	chats      *chat.Store
	courses    *course.Tracker
	pdf        *pdfctx.Cache
	dispatcher *dispatch.Dispatcher
	extractor  dispatch.Extractor
	log        logger.ILogger
	now        func() time.Time

	maxUploadBytes int
	warnings       []string
}

type options struct {
	now             func() time.Time
	quotaBytes      int
	maxContextChars int
	maxUploadBytes  int
}

type Option func(*options)

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithQuota(bytes int) Option {
	return func(o *options) { o.quotaBytes = bytes }
}

func WithMaxContextChars(n int) Option {
	return func(o *options) { o.maxContextChars = n }
}

func WithMaxUploadBytes(n int) Option {
	return func(o *options) { o.maxUploadBytes = n }
}

// Open builds the workspace for owner and rehydrates it from backend.
func Open(
	ctx context.Context,
	owner string,
	backend storage.Backend,
	completer dispatch.Completer,
	extractor dispatch.Extractor,
	log logger.ILogger,
	opts ...Option,
) *Workspace {
	o := options{now: time.Now, maxUploadBytes: MaxUploadBytes}
	for _, opt := range opts {
		opt(&o)
	}

	w := &Workspace{
		owner:          owner,
		extractor:      extractor,
		log:            log,
		now:            o.now,
		maxUploadBytes: o.maxUploadBytes,
	}
	w.adapter = storage.NewAdapter(backend, owner, log,
		storage.WithQuota(o.quotaBytes),
		storage.WithWarningHook(w.recordWarning),
	)
	w.chats = chat.NewStore(w.adapter, chat.WithClock(o.now))
	w.courses = course.NewTracker(w.adapter)
	w.pdf = pdfctx.NewCache(w.adapter)
	w.dispatcher = dispatch.NewDispatcher(completer, dispatch.WithMaxContextChars(o.maxContextChars))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.courses.Load(ctx)
	w.pdf.Load(ctx)
	active := w.chats.Rehydrate(ctx)

	log.Info(logModule, "Workspace opened", map[string]interface{}{
		"owner":    owner,
		"sessions": w.chats.Len(),
		"active":   active.ID,
	})
	return w
}

func (w *Workspace) Owner() string {
	return w.owner
}

// recordWarning runs from inside adapter calls, so mu is already held.
func (w *Workspace) recordWarning(key string, err error) {
	w.warnings = append(w.warnings, "Could not save "+key+": "+err.Error())
}

// DrainWarnings returns and forgets the storage notices collected so far.
func (w *Workspace) DrainWarnings() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.warnings
	w.warnings = nil
	return out
}

// --- Chat ---

// AskResult describes what one Ask call did to the transcript.
type AskResult struct {
	SessionID string        `json:"session_id"`
	Skipped   bool          `json:"skipped"`
	Stale     bool          `json:"stale"`
	Failed    bool          `json:"failed"`
	Question  *chat.Message `json:"question,omitempty"`
	Reply     *chat.Message `json:"reply,omitempty"`
}

// Ask sends question to the completion endpoint on behalf of the active
// session. A blank question does nothing. If a newer question for the same
// session was issued while this one was in flight, the reply is discarded.
func (w *Workspace) Ask(ctx context.Context, question string) AskResult {
	w.mu.Lock()
	sessionID := w.chats.ActiveID()
	var pdf *pdfctx.Context
	if cached, ok := w.pdf.Get(); ok {
		pdf = &cached
	}
	ticket, ok := w.dispatcher.Prepare(sessionID, question, pdf)
	if !ok {
		w.mu.Unlock()
		return AskResult{SessionID: sessionID, Skipped: true}
	}

	userMsg := chat.NewMessage(chat.SenderUser, ticket.Request.Question, w.now())
	_ = w.chats.Append(ctx, sessionID, userMsg)
	w.chats.SetPending(sessionID, true)
	w.mu.Unlock()

	reply := w.dispatcher.Send(ctx, ticket)

	w.mu.Lock()
	defer w.mu.Unlock()

	result := AskResult{SessionID: sessionID, Question: &userMsg, Failed: reply.Failed()}
	if reply.Failed() {
		w.log.Warn(logModule, "Completion request failed", map[string]interface{}{
			"owner":   w.owner,
			"session": sessionID,
			"error":   reply.Err.Error(),
		})
	}

	if !w.dispatcher.IsLatest(ticket) {
		w.log.Info(logModule, "Discarding superseded reply", map[string]interface{}{
			"owner":   w.owner,
			"session": sessionID,
			"seq":     ticket.Seq,
		})
		result.Stale = true
		return result
	}

	w.chats.SetPending(sessionID, false)
	aiMsg := chat.NewMessage(chat.SenderAI, reply.Text, w.now())
	if err := w.chats.Append(ctx, sessionID, aiMsg); err != nil {
		result.Stale = true
		return result
	}
	result.Reply = &aiMsg
	return result
}

// Sessions lists sessions newest-access first together with the active id.
func (w *Workspace) Sessions() ([]*chat.Session, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chats.ListByRecency(), w.chats.ActiveID()
}

func (w *Workspace) CreateSession(ctx context.Context, title string) *chat.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chats.Create(ctx, title)
}

func (w *Workspace) SwitchSession(ctx context.Context, id string) (*chat.Session, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	sess, err := w.chats.SwitchTo(ctx, id)
	if err != nil {
		w.log.Warn(logModule, "Switch to unknown session", map[string]interface{}{
			"owner":   w.owner,
			"session": id,
		})
	}
	return sess, err
}

func (w *Workspace) DeleteSession(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.chats.Delete(ctx, id); err != nil {
		return err
	}
	w.dispatcher.Forget(id)
	return nil
}

func (w *Workspace) RenameSession(ctx context.Context, id, title string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chats.Rename(ctx, id, title)
}

// Transcript renders one session; an empty id means the active session.
func (w *Workspace) Transcript(ctx context.Context, id string) (*chat.Session, []chat.Message, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id == "" {
		id = w.chats.ActiveID()
	}
	msgs, err := w.chats.Transcript(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	sess, _ := w.chats.Get(id)
	return sess, msgs, nil
}

// IsPending reports whether a reply for session id is still outstanding.
func (w *Workspace) IsPending(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.chats.IsPending(id)
}

// --- PDF ---

// UploadPDF validates the file locally, sends it for extraction and caches
// the result as the PDF context for following questions.
func (w *Workspace) UploadPDF(ctx context.Context, filename, contentType string, data []byte) (pdfctx.Context, error) {
	if err := w.validateUpload(contentType, data); err != nil {
		return pdfctx.Context{}, err
	}

	extraction, err := w.extractor.Extract(ctx, filename, data)
	if err != nil {
		w.log.Warn(logModule, "PDF extraction failed", map[string]interface{}{
			"owner":    w.owner,
			"filename": filename,
			"error":    err.Error(),
		})
		return pdfctx.Context{}, err
	}

	name := extraction.Filename
	if name == "" {
		name = filename
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pdf.Set(ctx, extraction.Text, name, extraction.Pages), nil
}

func (w *Workspace) validateUpload(contentType string, data []byte) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != PDFMimeType {
		return ErrNotPDF
	}
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if len(data) > w.maxUploadBytes {
		return ErrFileTooLarge
	}
	return nil
}

func (w *Workspace) PdfContext() (pdfctx.Context, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pdf.Get()
}

func (w *Workspace) ClearPdfContext(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pdf.Clear(ctx)
}

// Logout drops the PDF context so later questions go out without it.
func (w *Workspace) Logout(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pdf.Clear(ctx)
	w.log.Info(logModule, "Workspace logged out", map[string]interface{}{"owner": w.owner})
}

// --- Courses ---

func (w *Workspace) Slots() []*course.Slot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.courses.Slots()
}

func (w *Workspace) Slot(slotID string) (*course.Slot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.courses.Get(slotID)
}

func (w *Workspace) Selection() (string, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.courses.Selection()
}

func (w *Workspace) AddSlot(ctx context.Context, courseKey, topic string) (*course.Slot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.courses.AddSlot(ctx, courseKey, topic)
}

func (w *Workspace) MarkTopic(ctx context.Context, slotID, topic string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.courses.MarkTopicCovered(ctx, slotID, topic)
}

func (w *Workspace) UnmarkTopic(ctx context.Context, slotID, topic string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.courses.UnmarkTopic(ctx, slotID, topic)
}

func (w *Workspace) DeleteSlot(ctx context.Context, slotID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.courses.DeleteSlot(ctx, slotID)
}
