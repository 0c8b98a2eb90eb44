package service

import (
	"context"
	"testing"
	"time"

	"tutorai-be/internal/constant"
	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/internal/repository/memory"
	"tutorai-be/pkg/storage"
	"tutorai-be/pkg/tutor/chat"
	"tutorai-be/pkg/tutor/course"
	"tutorai-be/pkg/tutor/workspace"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspaceFixture struct {
	svc      IWorkspaceService
	llm      *fakeLLM
	backend  *storage.MemoryBackend
	registry *memory.WorkspaceRepository
}

func newWorkspaceFixture(t *testing.T, withBus bool) *workspaceFixture {
	t.Helper()
	log := logger.NewNop()
	provider := &fakeLLM{answer: "Here is an explanation."}
	backend := storage.NewMemoryBackend()
	registry := memory.NewWorkspaceRepository(time.Hour)

	var publisher IPublisherService
	if withBus {
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
		t.Cleanup(func() { _ = pubSub.Close() })

		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		require.NoError(t, NewConsumerService(pubSub, constant.ActivityTopic, backend, log).Consume(ctx))
		publisher = NewPublisherService(constant.ActivityTopic, pubSub)
	}

	svc := NewWorkspaceService(registry, backend, NewAskService(provider, log), NewPdfService(workspace.MaxUploadBytes, log), publisher, log,
		WorkspaceOptions{QuotaBytes: 5 * 1024 * 1024, MaxContextChars: 12000, MaxUploadBytes: workspace.MaxUploadBytes})
	return &workspaceFixture{svc: svc, llm: provider, backend: backend, registry: registry}
}

func TestWorkspaceServiceSessionLifecycle(t *testing.T) {
	f := newWorkspaceFixture(t, false)
	ctx := context.Background()

	list, err := f.svc.ListSessions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	first := list.ActiveId

	created, err := f.svc.CreateSession(ctx, "u1", &dto.CreateSessionRequest{Title: "Physics revision"})
	require.NoError(t, err)
	assert.Equal(t, "Physics revision", created.Session.Title)
	assert.True(t, created.Session.Active)
	assert.Equal(t, chat.GreetingText, created.Messages[0].Content)

	switched, err := f.svc.ActivateSession(ctx, "u1", first)
	require.NoError(t, err)
	assert.True(t, switched.Session.Active)

	_, err = f.svc.ActivateSession(ctx, "u1", "missing")
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)

	after, err := f.svc.DeleteSession(ctx, "u1", first)
	require.NoError(t, err)
	require.Len(t, after.Sessions, 1)
	assert.Equal(t, created.Session.Id, after.ActiveId)
}

func TestWorkspaceServiceAskRecordsTranscript(t *testing.T) {
	f := newWorkspaceFixture(t, false)
	ctx := context.Background()

	res, err := f.svc.Ask(ctx, "u1", &dto.WorkspaceAskRequest{Question: "Explain recursion"})
	require.NoError(t, err)
	require.NotNil(t, res.Reply)
	assert.Equal(t, "Here is an explanation.", res.Reply.Content)

	skipped, err := f.svc.Ask(ctx, "u1", &dto.WorkspaceAskRequest{Question: "  "})
	require.NoError(t, err)
	assert.True(t, skipped.Skipped)
	assert.Equal(t, 1, f.llm.calls)

	show, err := f.svc.ShowSession(ctx, "u1", res.SessionId)
	require.NoError(t, err)
	assert.Len(t, show.Messages, 3)
	assert.False(t, show.Pending)
}

func TestWorkspaceServiceRehydratesEvictedWorkspace(t *testing.T) {
	f := newWorkspaceFixture(t, false)
	ctx := context.Background()

	res, err := f.svc.Ask(ctx, "u1", &dto.WorkspaceAskRequest{Question: "Remember this"})
	require.NoError(t, err)
	f.registry.Delete("u1")

	show, err := f.svc.ShowSession(ctx, "u1", res.SessionId)
	require.NoError(t, err)
	assert.Equal(t, "Remember this", show.Messages[1].Content)
}

func TestWorkspaceServiceCourses(t *testing.T) {
	f := newWorkspaceFixture(t, false)
	ctx := context.Background()

	slot, err := f.svc.AddCourse(ctx, "u1", &dto.AddCourseRequest{Course: "Physics"})
	require.NoError(t, err)
	assert.Equal(t, "physics", slot.Course)
	assert.Equal(t, "Physics", slot.Name)

	marked, err := f.svc.MarkTopic(ctx, "u1", slot.Id, "mechanics")
	require.NoError(t, err)
	assert.Equal(t, 1, marked.Progress.Covered)
	assert.Equal(t, 5, marked.Progress.Total)

	_, err = f.svc.MarkTopic(ctx, "u1", slot.Id, "cooking")
	assert.ErrorIs(t, err, course.ErrUnknownTopic)

	unmarked, err := f.svc.UnmarkTopic(ctx, "u1", slot.Id, "mechanics")
	require.NoError(t, err)
	assert.Zero(t, unmarked.Progress.Covered)

	_, err = f.svc.AddCourse(ctx, "u1", &dto.AddCourseRequest{Course: "mathematics"})
	require.NoError(t, err)
	_, err = f.svc.AddCourse(ctx, "u1", &dto.AddCourseRequest{Course: "chemistry"})
	require.NoError(t, err)
	_, err = f.svc.AddCourse(ctx, "u1", &dto.AddCourseRequest{Course: "biology"})
	assert.ErrorIs(t, err, course.ErrSlotLimitReached)

	overview, err := f.svc.Courses(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, overview.Slots, course.MaxSlots)
	assert.Equal(t, "chemistry", overview.SelectedCourse)
	assert.NotEmpty(t, overview.Catalog)
}

func TestWorkspaceServiceRejectsNonPdfUpload(t *testing.T) {
	f := newWorkspaceFixture(t, false)

	_, err := f.svc.UploadPdf(context.Background(), "u1", "notes.txt", "text/plain", []byte("hello"))

	assert.ErrorIs(t, err, workspace.ErrNotPDF)
	pdf, err := f.svc.GetPdf(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, pdf.Loaded)
}

func TestWorkspaceServiceActivityStats(t *testing.T) {
	f := newWorkspaceFixture(t, true)
	ctx := context.Background()

	_, err := f.svc.Ask(ctx, "u1", &dto.WorkspaceAskRequest{Question: "one"})
	require.NoError(t, err)
	_, err = f.svc.Ask(ctx, "u1", &dto.WorkspaceAskRequest{Question: "two"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		stats, err := f.svc.Stats(ctx, "u1")
		return err == nil && stats.QuestionsAsked == 2
	}, 2*time.Second, 10*time.Millisecond)

	other, err := f.svc.Stats(ctx, "u2")
	require.NoError(t, err)
	assert.Zero(t, other.QuestionsAsked)
}
