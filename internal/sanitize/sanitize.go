// Package sanitize defines the boundary to the external sanitizer that
// pre-fixes common generator mistakes before validation runs.
package sanitize

import (
	"context"

	"github.com/playproof/levelengine/internal/domain"
)

// Sanitizer is the consumed sanitization capability. It is the only
// collaborator allowed to mutate a level before validation.
type Sanitizer interface {
	Sanitize(ctx context.Context, level *domain.GridLevel) (*domain.SanitizeResult, error)
}

// PassThrough returns levels unchanged. It stands in when no external
// sanitizer is configured.
type PassThrough struct{}

// Sanitize returns the level as-is with no fixes.
func (PassThrough) Sanitize(_ context.Context, level *domain.GridLevel) (*domain.SanitizeResult, error) {
	return &domain.SanitizeResult{Level: level, Fixes: []string{}}, nil
}
