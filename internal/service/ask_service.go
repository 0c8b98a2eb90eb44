package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tutorai-be/internal/constant"
	"tutorai-be/internal/dto"
	"tutorai-be/internal/pkg/logger"
	"tutorai-be/pkg/llm"
)

var (
	ErrQuestionRequired = errors.New("question is required")
	ErrAIService        = errors.New("ai service unavailable")
)

type IAskService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
}

type askService struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewAskService(llmProvider llm.LLMProvider, logger logger.ILogger) IAskService {
	return &askService{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (s *askService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrQuestionRequired
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: buildSystemPrompt(req.PdfContext)},
		{Role: llm.RoleUser, Content: question},
	}

	answer, err := s.llmProvider.Chat(ctx, history,
		llm.WithMaxTokens(constant.AskMaxTokens),
		llm.WithTemperature(constant.AskTemperature),
	)
	if err != nil {
		s.logger.Error("ASK", "Completion request failed", map[string]interface{}{
			"error":       err.Error(),
			"has_context": req.PdfContext != "",
		})
		return nil, fmt.Errorf("%w: %v", ErrAIService, err)
	}

	if strings.TrimSpace(answer) == "" {
		answer = constant.EmptyAnswerText
	}
	return &dto.AskResponse{Answer: answer}, nil
}

func buildSystemPrompt(pdfContext string) string {
	if pdfContext == "" {
		return constant.SystemPrompt
	}
	return constant.SystemPrompt + fmt.Sprintf(constant.PdfContextPrompt, pdfContext)
}
