package testutil

import (
	"context"
	"sync"

	"github.com/renato-web/Profluxo/internal/llm"
)

// FakeLLMClient is an llm.LLMClient that records requests and returns a
// canned response. If Gate is non-nil, Generate blocks until it is closed.
type FakeLLMClient struct {
	Text string
	Err  error
	Gate chan struct{}

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func (f *FakeLLMClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return &llm.GenerateResponse{Text: f.Text, Model: "fake"}, nil
}

func (f *FakeLLMClient) Available(context.Context) bool { return f.Err == nil }

// Requests returns a copy of every request received so far.
func (f *FakeLLMClient) Requests() []llm.GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.GenerateRequest(nil), f.requests...)
}
