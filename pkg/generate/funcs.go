package generate

import (
	"context"

	"github.com/matzehuels/auteur/pkg/errors"
)

// Funcs adapts plain functions to [Generator]. A nil function reports
// ErrCodeUnsupported.
type Funcs struct {
	ScriptFunc func(ctx context.Context, req Request) (string, error)
	ImageFunc  func(ctx context.Context, prompt string) (string, error)
}

func (f Funcs) Script(ctx context.Context, req Request) (string, error) {
	if f.ScriptFunc == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "script generation not configured")
	}
	return f.ScriptFunc(ctx, req)
}

func (f Funcs) Image(ctx context.Context, prompt string) (string, error) {
	if f.ImageFunc == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "image generation not configured")
	}
	return f.ImageFunc(ctx, prompt)
}
