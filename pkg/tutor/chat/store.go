package chat

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"tutorai-be/pkg/storage"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("chat session not found")

// Store owns the session collection of one workspace. It is the single source
// of truth for transcripts; callers render from it and never write back views.
// Store is not safe for concurrent use; the owning workspace serializes access.
type Store struct {
	adapter  *storage.Adapter
	now      func() time.Time
	sessions []*Session
	activeID string
	pending  map[string]bool
}

type StoreOption func(*Store)

// WithClock replaces time.Now, mainly for staleness tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(adapter *storage.Adapter, opts ...StoreOption) *Store {
	s := &Store{
		adapter: adapter,
		now:     time.Now,
		pending: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rehydrate loads the persisted collection and picks the active session:
// an empty collection gets a fresh session, a collection whose most recent
// session is older than StaleAfter gets an additional fresh session, and
// otherwise the most recent session is resumed.
func (s *Store) Rehydrate(ctx context.Context) *Session {
	loaded, _ := storage.Load[[]*Session](ctx, s.adapter, storage.KeyChatSessions)

	s.sessions = s.sessions[:0]
	for _, sess := range loaded {
		if sess == nil || sess.ID == "" {
			continue
		}
		sess.sync()
		s.sessions = append(s.sessions, sess)
	}
	s.activeID = ""

	latest := s.mostRecent()
	if latest == nil {
		return s.Create(ctx, "")
	}
	if s.now().Sub(latest.LastAccessed) > StaleAfter {
		return s.Create(ctx, "")
	}

	s.activeID = latest.ID
	latest.LastAccessed = s.now()
	s.persist(ctx)
	return latest.clone()
}

// Create appends a new session holding a single greeting and makes it active.
func (s *Store) Create(ctx context.Context, title string) *Session {
	now := s.now()
	title = strings.TrimSpace(title)
	if title == "" {
		title = now.Format(TitleLayout)
	}

	sess := &Session{
		ID:           newSessionID(),
		Title:        title,
		Messages:     []Message{NewMessage(SenderAI, GreetingText, now)},
		CreatedAt:    now,
		LastAccessed: now,
	}
	sess.sync()

	s.sessions = append(s.sessions, sess)
	s.activeID = sess.ID
	s.persist(ctx)
	return sess.clone()
}

// SwitchTo touches the current session, then activates and touches the target.
func (s *Store) SwitchTo(ctx context.Context, id string) (*Session, error) {
	target := s.find(id)
	if target == nil {
		return nil, ErrSessionNotFound
	}

	if current := s.find(s.activeID); current != nil {
		current.LastAccessed = s.now()
		s.persist(ctx)
	}

	s.activeID = target.ID
	target.LastAccessed = s.now()
	s.persist(ctx)
	return target.clone(), nil
}

// Delete removes a session. Deleting the active session activates the most
// recently accessed survivor, or a fresh session when none remain.
func (s *Store) Delete(ctx context.Context, id string) error {
	idx := s.index(id)
	if idx < 0 {
		return ErrSessionNotFound
	}

	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	delete(s.pending, id)
	s.persist(ctx)

	if s.activeID != id {
		return nil
	}

	s.activeID = ""
	if next := s.mostRecent(); next != nil {
		_, err := s.SwitchTo(ctx, next.ID)
		return err
	}
	s.Create(ctx, "")
	return nil
}

// ListByRecency returns copies ordered by LastAccessed, newest first.
func (s *Store) ListByRecency() []*Session {
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.clone())
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastAccessed.After(out[j].LastAccessed)
	})
	return out
}

// Active returns the active session, or nil before Rehydrate/Create.
func (s *Store) Active() *Session {
	if sess := s.find(s.activeID); sess != nil {
		return sess.clone()
	}
	return nil
}

func (s *Store) ActiveID() string {
	return s.activeID
}

// Get peeks at a session without touching it.
func (s *Store) Get(id string) (*Session, bool) {
	if sess := s.find(id); sess != nil {
		return sess.clone(), true
	}
	return nil, false
}

func (s *Store) Len() int {
	return len(s.sessions)
}

// Transcript renders a session for display and counts as an access. A pending
// request shows up as a trailing placeholder that is never stored.
func (s *Store) Transcript(ctx context.Context, id string) ([]Message, error) {
	sess := s.find(id)
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	sess.LastAccessed = s.now()
	s.persist(ctx)

	out := append([]Message(nil), sess.Messages...)
	if s.pending[id] {
		out = append(out, Message{Sender: SenderAI, Content: PlaceholderText})
	}
	return out, nil
}

// Append adds a finalized message to a session.
func (s *Store) Append(ctx context.Context, id string, msg Message) error {
	sess := s.find(id)
	if sess == nil {
		return ErrSessionNotFound
	}
	sess.Messages = append(sess.Messages, msg)
	sess.LastAccessed = s.now()
	sess.sync()
	s.persist(ctx)
	return nil
}

// ReplaceMessages swaps a session's transcript wholesale.
func (s *Store) ReplaceMessages(ctx context.Context, id string, msgs []Message) error {
	sess := s.find(id)
	if sess == nil {
		return ErrSessionNotFound
	}
	sess.Messages = append([]Message(nil), msgs...)
	sess.LastAccessed = s.now()
	sess.sync()
	s.persist(ctx)
	return nil
}

func (s *Store) Rename(ctx context.Context, id, title string) error {
	sess := s.find(id)
	if sess == nil {
		return ErrSessionNotFound
	}
	if title = strings.TrimSpace(title); title == "" {
		title = sess.CreatedAt.Format(TitleLayout)
	}
	sess.Title = title
	sess.LastAccessed = s.now()
	s.persist(ctx)
	return nil
}

// SetPending toggles the in-flight marker for a session. It is runtime-only.
func (s *Store) SetPending(id string, pending bool) {
	if pending {
		s.pending[id] = true
		return
	}
	delete(s.pending, id)
}

func (s *Store) IsPending(id string) bool {
	return s.pending[id]
}

func (s *Store) persist(ctx context.Context) bool {
	return s.adapter.Save(ctx, storage.KeyChatSessions, s.sessions)
}

func (s *Store) find(id string) *Session {
	if idx := s.index(id); idx >= 0 {
		return s.sessions[idx]
	}
	return nil
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) mostRecent() *Session {
	var latest *Session
	for _, sess := range s.sessions {
		if latest == nil || sess.LastAccessed.After(latest.LastAccessed) {
			latest = sess
		}
	}
	return latest
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
