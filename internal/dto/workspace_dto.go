package dto

import "time"

type CreateSessionRequest struct {
	Title string `json:"title" validate:"max=120"`
}

type RenameSessionRequest struct {
	Title string `json:"title" validate:"required,max=120"`
}

type WorkspaceAskRequest struct {
	Question string `json:"question" validate:"max=8000"`
}

type AddCourseRequest struct {
	Course string `json:"course" validate:"required"`
	Topic  string `json:"topic"`
}

type MessageDTO struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

type SessionSummaryResponse struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
	Active       bool      `json:"active"`
}

type SessionListResponse struct {
	ActiveId string                    `json:"active_id"`
	Sessions []*SessionSummaryResponse `json:"sessions"`
	Warnings []string                  `json:"warnings,omitempty"`
}

type TranscriptResponse struct {
	Session  *SessionSummaryResponse `json:"session"`
	Messages []MessageDTO            `json:"messages"`
	Pending  bool                    `json:"pending"`
	Warnings []string                `json:"warnings,omitempty"`
}

type WorkspaceAskResponse struct {
	SessionId string      `json:"session_id"`
	Skipped   bool        `json:"skipped"`
	Stale     bool        `json:"stale"`
	Failed    bool        `json:"failed"`
	Question  *MessageDTO `json:"question,omitempty"`
	Reply     *MessageDTO `json:"reply,omitempty"`
	Warnings  []string    `json:"warnings,omitempty"`
}

type PdfContextResponse struct {
	Loaded     bool       `json:"loaded"`
	Filename   string     `json:"filename,omitempty"`
	Pages      int        `json:"pages,omitempty"`
	Characters int        `json:"characters,omitempty"`
	UploadedAt *time.Time `json:"uploaded_at,omitempty"`
	Warnings   []string   `json:"warnings,omitempty"`
}

type CourseDTO struct {
	Key    string   `json:"key"`
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

type ProgressDTO struct {
	Covered int     `json:"covered"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

type SlotResponse struct {
	Id        string      `json:"id"`
	Course    string      `json:"course"`
	Name      string      `json:"name"`
	Topics    []string    `json:"topics"`
	Progress  ProgressDTO `json:"progress"`
	CreatedAt time.Time   `json:"created_at"`
	Warnings  []string    `json:"warnings,omitempty"`
}

type CourseOverviewResponse struct {
	Catalog        []CourseDTO     `json:"catalog"`
	Slots          []*SlotResponse `json:"slots"`
	MaxSlots       int             `json:"max_slots"`
	SelectedCourse string          `json:"selected_course"`
	SelectedTopic  string          `json:"selected_topic"`
}

type ActivityStatsResponse struct {
	QuestionsAsked int        `json:"questions_asked"`
	FailedAnswers  int        `json:"failed_answers"`
	PdfsUploaded   int        `json:"pdfs_uploaded"`
	LastActivity   *time.Time `json:"last_activity,omitempty"`
}

// ActivityEventMessage is published on the activity topic.
type ActivityEventMessage struct {
	Type       string                 `json:"type"`
	UserId     string                 `json:"user_id"`
	Data       map[string]interface{} `json:"data,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
