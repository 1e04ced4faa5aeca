package generate

import (
	"context"
	"sync"

	"github.com/playproof/levelengine/internal/domain"
)

// Scripted replays a fixed sequence of generation results. It exists for
// tests and local runs without an upstream generator; the last result
// repeats once the script is exhausted.
type Scripted struct {
	mu      sync.Mutex
	results []*domain.GenerateResult
	calls   int

	// FeedbackSeen records the issue batches passed to GenerateWithFeedback.
	FeedbackSeen [][]domain.Issue
}

// NewScripted creates a scripted generator from the given results.
func NewScripted(results ...*domain.GenerateResult) *Scripted {
	return &Scripted{results: results}
}

// Name identifies the generator variant.
func (s *Scripted) Name() string { return "scripted" }

// Calls returns how many generation calls were made.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Generate returns the next scripted result.
func (s *Scripted) Generate(_ context.Context, _ Request) (*domain.GenerateResult, error) {
	return s.next(), nil
}

// GenerateWithFeedback records the feedback issues and returns the next
// scripted result.
func (s *Scripted) GenerateWithFeedback(_ context.Context, req FeedbackRequest) (*domain.GenerateResult, error) {
	s.mu.Lock()
	s.FeedbackSeen = append(s.FeedbackSeen, req.Issues)
	s.mu.Unlock()
	return s.next(), nil
}

func (s *Scripted) next() *domain.GenerateResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.results) == 0 {
		return &domain.GenerateResult{}
	}
	idx := s.calls - 1
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	return s.results[idx]
}
