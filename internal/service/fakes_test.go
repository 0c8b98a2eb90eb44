package service

import (
	"context"
	"sync"

	"tutorai-be/pkg/llm"
	"tutorai-be/pkg/video"
)

type fakeLLM struct {
	mu      sync.Mutex
	answer  string
	err     error
	history []llm.Message
	options llm.Options
	calls   int
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.history = history
	f.options = llm.Options{}
	for _, o := range opts {
		o(&f.options)
	}
	return f.answer, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

type fakeSearcher struct {
	videos  []video.Video
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]video.Video, error) {
	f.queries = append(f.queries, query)
	return f.videos, f.err
}
