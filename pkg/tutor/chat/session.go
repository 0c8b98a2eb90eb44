package chat

import (
	"time"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

const (
	GreetingText    = "Hello! I'm TutorAI, your personal learning assistant. Ask me anything to get started."
	PlaceholderText = "Thinking..."

	TimestampLayout = "15:04"
	TitleLayout     = "Jan 2, 2006"
)

// StaleAfter is how long a session may sit unused before rehydration starts a new one.
const StaleAfter = 12 * time.Hour

// Message is one transcript entry. Timestamp is display-only.
type Message struct {
	Sender    Sender `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Session is one persisted chat transcript.
type Session struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`
	MessageCount int       `json:"messageCount"`
}

func NewMessage(sender Sender, content string, at time.Time) Message {
	return Message{
		Sender:    sender,
		Content:   content,
		Timestamp: at.Format(TimestampLayout),
	}
}

func (s *Session) sync() {
	s.MessageCount = len(s.Messages)
}

func (s *Session) clone() *Session {
	c := *s
	c.Messages = append([]Message(nil), s.Messages...)
	return &c
}
