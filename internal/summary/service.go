package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/renato-web/Profluxo/internal/domain"
	"github.com/renato-web/Profluxo/internal/llm"
)

// Summary is the narrative shown under the dashboard.
type Summary struct {
	Text     string
	Model    string
	Fallback bool // Text is one of the fixed fallback messages
}

// Service produces the narrative summary. It never returns an error:
// every failure degrades to a fixed message.
type Service interface {
	RequestNarrativeSummary(ctx context.Context, logs []domain.TaskLog) *Summary
}

type service struct {
	client llm.LLMClient
	group  singleflight.Group
}

// NewService creates a Service backed by client. A nil client always
// yields FallbackUnavailable.
func NewService(client llm.LLMClient) Service {
	return &service{client: client}
}

// RequestNarrativeSummary forwards a reduced sample of logs to the model.
// Concurrent requests for the same sample share one in-flight call; each
// caller still returns as soon as its own ctx is done.
func (s *service) RequestNarrativeSummary(ctx context.Context, logs []domain.TaskLog) *Summary {
	if s.client == nil {
		return unavailable()
	}

	sample, err := encodeSample(BuildSample(logs))
	if err != nil {
		return unavailable()
	}

	// The shared call must outlive any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(sampleKey(sample), func() (any, error) {
		return s.generate(shared, sample), nil
	})
	select {
	case res := <-ch:
		return res.Val.(*Summary)
	case <-ctx.Done():
		return unavailable()
	}
}

func (s *service) generate(ctx context.Context, sample []byte) *Summary {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSummary,
		SystemPrompt: systemInstruction,
		UserPrompt:   buildPrompt(sample),
	})
	if err != nil {
		return unavailable()
	}

	if strings.TrimSpace(resp.Text) == "" {
		return &Summary{Text: FallbackEmpty, Model: resp.Model, Fallback: true}
	}
	return &Summary{Text: resp.Text, Model: resp.Model}
}

func sampleKey(sample []byte) string {
	sum := sha256.Sum256(sample)
	return hex.EncodeToString(sum[:])
}

func unavailable() *Summary {
	return &Summary{Text: FallbackUnavailable, Fallback: true}
}
