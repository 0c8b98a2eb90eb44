package service

import (
	"context"
	"sync"

	"tutorai-be/internal/constant"
	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/internal/repository/memory"
	"tutorai-be/pkg/events"
	"tutorai-be/pkg/storage"
	"tutorai-be/pkg/tutor/chat"
	"tutorai-be/pkg/tutor/course"
	"tutorai-be/pkg/tutor/dispatch"
	"tutorai-be/pkg/tutor/workspace"
)

type IWorkspaceService interface {
	ListSessions(ctx context.Context, userId string) (*dto.SessionListResponse, error)
	CreateSession(ctx context.Context, userId string, req *dto.CreateSessionRequest) (*dto.TranscriptResponse, error)
	ShowSession(ctx context.Context, userId, sessionId string) (*dto.TranscriptResponse, error)
	ActivateSession(ctx context.Context, userId, sessionId string) (*dto.TranscriptResponse, error)
	RenameSession(ctx context.Context, userId, sessionId string, req *dto.RenameSessionRequest) (*dto.TranscriptResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId string) (*dto.SessionListResponse, error)

	Ask(ctx context.Context, userId string, req *dto.WorkspaceAskRequest) (*dto.WorkspaceAskResponse, error)

	UploadPdf(ctx context.Context, userId, filename, contentType string, data []byte) (*dto.PdfContextResponse, error)
	GetPdf(ctx context.Context, userId string) (*dto.PdfContextResponse, error)
	ClearPdf(ctx context.Context, userId string) (*dto.PdfContextResponse, error)
	Logout(ctx context.Context, userId string) error

	Courses(ctx context.Context, userId string) (*dto.CourseOverviewResponse, error)
	AddCourse(ctx context.Context, userId string, req *dto.AddCourseRequest) (*dto.SlotResponse, error)
	DeleteCourse(ctx context.Context, userId, slotId string) error
	MarkTopic(ctx context.Context, userId, slotId, topic string) (*dto.SlotResponse, error)
	UnmarkTopic(ctx context.Context, userId, slotId, topic string) (*dto.SlotResponse, error)

	Stats(ctx context.Context, userId string) (*dto.ActivityStatsResponse, error)
}

type WorkspaceOptions struct {
	QuotaBytes      int
	MaxContextChars int
	MaxUploadBytes  int
}

type workspaceService struct {
	mu        sync.Mutex
	registry  *memory.WorkspaceRepository
	backend   storage.Backend
	completer dispatch.Completer
	extractor dispatch.Extractor
	publisher IPublisherService
	logger    logger.ILogger
	opts      WorkspaceOptions
}

func NewWorkspaceService(
	registry *memory.WorkspaceRepository,
	backend storage.Backend,
	askService IAskService,
	pdfService IPdfService,
	publisher IPublisherService,
	logger logger.ILogger,
	opts WorkspaceOptions,
) IWorkspaceService {
	return &workspaceService{
		registry:  registry,
		backend:   backend,
		completer: NewAskCompleter(askService),
		extractor: NewPdfExtractor(pdfService),
		publisher: publisher,
		logger:    logger,
		opts:      opts,
	}
}

// NewAskCompleter runs workspace questions through the ask service in process.
func NewAskCompleter(askService IAskService) dispatch.Completer {
	return dispatch.CompleterFunc(func(ctx context.Context, req dispatch.AskRequest) (string, error) {
		res, err := askService.Ask(ctx, &dto.AskRequest{Question: req.Question, PdfContext: req.PdfContext})
		if err != nil {
			return "", err
		}
		return res.Answer, nil
	})
}

// NewPdfExtractor runs workspace uploads through the pdf service in process.
func NewPdfExtractor(pdfService IPdfService) dispatch.Extractor {
	return dispatch.ExtractorFunc(func(ctx context.Context, filename string, data []byte) (*dispatch.Extraction, error) {
		res, err := pdfService.Extract(ctx, filename, workspace.PDFMimeType, data)
		if err != nil {
			return nil, err
		}
		return &dispatch.Extraction{Text: res.Text, Pages: res.Pages, Filename: res.Filename}, nil
	})
}

func (s *workspaceService) workspace(ctx context.Context, userId string) *workspace.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ws, ok := s.registry.Get(userId); ok {
		return ws
	}

	// Rehydration must not inherit a request deadline.
	ws := workspace.Open(context.WithoutCancel(ctx), userId, s.backend, s.completer, s.extractor, s.logger,
		workspace.WithQuota(s.opts.QuotaBytes),
		workspace.WithMaxContextChars(s.opts.MaxContextChars),
		workspace.WithMaxUploadBytes(s.opts.MaxUploadBytes),
	)
	s.registry.Save(ws)
	return ws
}

func (s *workspaceService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("WORKSPACE", "Failed to publish activity event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

// --- Sessions ---

func (s *workspaceService) ListSessions(ctx context.Context, userId string) (*dto.SessionListResponse, error) {
	ws := s.workspace(ctx, userId)
	res := sessionList(ws)
	res.Warnings = ws.DrainWarnings()
	return res, nil
}

func (s *workspaceService) CreateSession(ctx context.Context, userId string, req *dto.CreateSessionRequest) (*dto.TranscriptResponse, error) {
	ws := s.workspace(ctx, userId)
	sess := ws.CreateSession(ctx, req.Title)
	return s.transcript(ctx, ws, sess.ID)
}

func (s *workspaceService) ShowSession(ctx context.Context, userId, sessionId string) (*dto.TranscriptResponse, error) {
	return s.transcript(ctx, s.workspace(ctx, userId), sessionId)
}

func (s *workspaceService) ActivateSession(ctx context.Context, userId, sessionId string) (*dto.TranscriptResponse, error) {
	ws := s.workspace(ctx, userId)
	if _, err := ws.SwitchSession(ctx, sessionId); err != nil {
		return nil, err
	}
	return s.transcript(ctx, ws, sessionId)
}

func (s *workspaceService) RenameSession(ctx context.Context, userId, sessionId string, req *dto.RenameSessionRequest) (*dto.TranscriptResponse, error) {
	ws := s.workspace(ctx, userId)
	if err := ws.RenameSession(ctx, sessionId, req.Title); err != nil {
		return nil, err
	}
	return s.transcript(ctx, ws, sessionId)
}

func (s *workspaceService) DeleteSession(ctx context.Context, userId, sessionId string) (*dto.SessionListResponse, error) {
	ws := s.workspace(ctx, userId)
	if err := ws.DeleteSession(ctx, sessionId); err != nil {
		return nil, err
	}
	res := sessionList(ws)
	res.Warnings = ws.DrainWarnings()
	return res, nil
}

func (s *workspaceService) transcript(ctx context.Context, ws *workspace.Workspace, sessionId string) (*dto.TranscriptResponse, error) {
	sess, msgs, err := ws.Transcript(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	_, active := ws.Sessions()
	return &dto.TranscriptResponse{
		Session:  sessionSummary(sess, active),
		Messages: messageList(msgs),
		Pending:  ws.IsPending(sess.ID),
		Warnings: ws.DrainWarnings(),
	}, nil
}

// --- Ask ---

func (s *workspaceService) Ask(ctx context.Context, userId string, req *dto.WorkspaceAskRequest) (*dto.WorkspaceAskResponse, error) {
	ws := s.workspace(ctx, userId)
	result := ws.Ask(ctx, req.Question)

	res := &dto.WorkspaceAskResponse{
		SessionId: result.SessionID,
		Skipped:   result.Skipped,
		Stale:     result.Stale,
		Failed:    result.Failed,
		Question:  messageDTO(result.Question),
		Reply:     messageDTO(result.Reply),
		Warnings:  ws.DrainWarnings(),
	}

	if !result.Skipped {
		s.publish(ctx, events.New(constant.EventQuestionAnswered, userId, map[string]interface{}{
			"session_id": result.SessionID,
			"failed":     result.Failed,
			"stale":      result.Stale,
		}))
	}
	return res, nil
}

// --- PDF ---

func (s *workspaceService) UploadPdf(ctx context.Context, userId, filename, contentType string, data []byte) (*dto.PdfContextResponse, error) {
	ws := s.workspace(ctx, userId)
	if _, err := ws.UploadPDF(ctx, filename, contentType, data); err != nil {
		return nil, err
	}

	res := pdfContext(ws)
	s.publish(ctx, events.New(constant.EventPdfUploaded, userId, map[string]interface{}{
		"filename": res.Filename,
		"pages":    res.Pages,
	}))
	return res, nil
}

func (s *workspaceService) GetPdf(ctx context.Context, userId string) (*dto.PdfContextResponse, error) {
	return pdfContext(s.workspace(ctx, userId)), nil
}

func (s *workspaceService) ClearPdf(ctx context.Context, userId string) (*dto.PdfContextResponse, error) {
	ws := s.workspace(ctx, userId)
	ws.ClearPdfContext(ctx)
	return pdfContext(ws), nil
}

func (s *workspaceService) Logout(ctx context.Context, userId string) error {
	s.workspace(ctx, userId).Logout(ctx)
	return nil
}

// --- Courses ---

func (s *workspaceService) Courses(ctx context.Context, userId string) (*dto.CourseOverviewResponse, error) {
	ws := s.workspace(ctx, userId)

	catalog := course.Catalog()
	res := &dto.CourseOverviewResponse{
		Catalog:  make([]dto.CourseDTO, 0, len(catalog)),
		Slots:    make([]*dto.SlotResponse, 0),
		MaxSlots: course.MaxSlots,
	}
	for _, c := range catalog {
		res.Catalog = append(res.Catalog, dto.CourseDTO{Key: c.Key, Name: c.Name, Topics: c.Topics})
	}
	for _, slot := range ws.Slots() {
		res.Slots = append(res.Slots, slotResponse(slot))
	}
	res.SelectedCourse, res.SelectedTopic = ws.Selection()
	return res, nil
}

func (s *workspaceService) AddCourse(ctx context.Context, userId string, req *dto.AddCourseRequest) (*dto.SlotResponse, error) {
	ws := s.workspace(ctx, userId)
	slot, err := ws.AddSlot(ctx, course.NormalizeKey(req.Course), req.Topic)
	if err != nil {
		return nil, err
	}
	res := slotResponse(slot)
	res.Warnings = ws.DrainWarnings()
	return res, nil
}

func (s *workspaceService) DeleteCourse(ctx context.Context, userId, slotId string) error {
	s.workspace(ctx, userId).DeleteSlot(ctx, slotId)
	return nil
}

func (s *workspaceService) MarkTopic(ctx context.Context, userId, slotId, topic string) (*dto.SlotResponse, error) {
	ws := s.workspace(ctx, userId)
	if err := ws.MarkTopic(ctx, slotId, topic); err != nil {
		return nil, err
	}
	return s.slot(ws, slotId)
}

func (s *workspaceService) UnmarkTopic(ctx context.Context, userId, slotId, topic string) (*dto.SlotResponse, error) {
	ws := s.workspace(ctx, userId)
	ws.UnmarkTopic(ctx, slotId, topic)
	return s.slot(ws, slotId)
}

func (s *workspaceService) slot(ws *workspace.Workspace, slotId string) (*dto.SlotResponse, error) {
	slot, ok := ws.Slot(slotId)
	if !ok {
		return nil, course.ErrSlotNotFound
	}
	res := slotResponse(slot)
	res.Warnings = ws.DrainWarnings()
	return res, nil
}

// --- Stats ---

func (s *workspaceService) Stats(ctx context.Context, userId string) (*dto.ActivityStatsResponse, error) {
	adapter := storage.NewAdapter(s.backend, userId, s.logger)
	stats, _ := storage.Load[activityStats](ctx, adapter, storage.KeyActivityStats)
	return &dto.ActivityStatsResponse{
		QuestionsAsked: stats.QuestionsAsked,
		FailedAnswers:  stats.FailedAnswers,
		PdfsUploaded:   stats.PdfsUploaded,
		LastActivity:   stats.LastActivity,
	}, nil
}

// --- mapping ---

func sessionList(ws *workspace.Workspace) *dto.SessionListResponse {
	sessions, active := ws.Sessions()
	res := &dto.SessionListResponse{
		ActiveId: active,
		Sessions: make([]*dto.SessionSummaryResponse, 0, len(sessions)),
	}
	for _, sess := range sessions {
		res.Sessions = append(res.Sessions, sessionSummary(sess, active))
	}
	return res
}

func sessionSummary(sess *chat.Session, activeId string) *dto.SessionSummaryResponse {
	return &dto.SessionSummaryResponse{
		Id:           sess.ID,
		Title:        sess.Title,
		MessageCount: sess.MessageCount,
		CreatedAt:    sess.CreatedAt,
		LastAccessed: sess.LastAccessed,
		Active:       sess.ID == activeId,
	}
}

func messageList(msgs []chat.Message) []dto.MessageDTO {
	out := make([]dto.MessageDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, *messageDTO(&msgs[i]))
	}
	return out
}

func messageDTO(msg *chat.Message) *dto.MessageDTO {
	if msg == nil {
		return nil
	}
	return &dto.MessageDTO{
		Sender:    string(msg.Sender),
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
	}
}

func pdfContext(ws *workspace.Workspace) *dto.PdfContextResponse {
	pdf, ok := ws.PdfContext()
	res := &dto.PdfContextResponse{Warnings: ws.DrainWarnings()}
	if !ok {
		return res
	}
	uploadedAt := pdf.UploadedAt
	res.Loaded = true
	res.Filename = pdf.Filename
	res.Pages = pdf.Pages
	res.Characters = len([]rune(pdf.Text))
	res.UploadedAt = &uploadedAt
	return res
}

func slotResponse(slot *course.Slot) *dto.SlotResponse {
	progress := course.ProgressOf(slot)
	name := slot.Course
	if c, ok := course.Lookup(slot.Course); ok {
		name = c.Name
	}
	return &dto.SlotResponse{
		Id:        slot.ID,
		Course:    slot.Course,
		Name:      name,
		Topics:    slot.Topics,
		CreatedAt: slot.CreatedAt,
		Progress: dto.ProgressDTO{
			Covered: progress.Covered,
			Total:   progress.Total,
			Percent: progress.Percent,
		},
	}
}
