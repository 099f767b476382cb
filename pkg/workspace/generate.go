package workspace

import (
	"context"
	"time"

	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/generate"
	"github.com/matzehuels/auteur/pkg/observability"
)

// Generate sends the project's notes, style, settings and gear to the
// generator and folds the returned sections into GENERATED_CONTENT boards.
// Edits made while the generator runs are kept; the sections are applied
// to the board collection as it is when the reply arrives.
func (w *Workspace) Generate(ctx context.Context) (generate.Sections, error) {
	w.mu.Lock()
	if w.generator == nil {
		w.mu.Unlock()
		return generate.Sections{}, errors.New(errors.ErrCodeUnsupported, "no generator configured")
	}
	if w.generating {
		w.mu.Unlock()
		return generate.Sections{}, errors.New(errors.ErrCodeInvalidInput, "generation already running")
	}
	w.generating = true
	req := generate.NewRequest(w.project, w.registry)
	gen := w.generator
	w.mu.Unlock()

	start := time.Now()
	text, err := gen.Script(ctx, req)
	observability.Render().OnGenerate(ctx, "script", time.Since(start), err)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.generating = false
	if err != nil {
		w.logger.Warn("script generation failed", "err", err)
		return generate.Sections{}, errors.Wrap(errors.ErrCodeGeneration, err, "generate script")
	}
	sections := generate.ParseSections(text)
	if sections.Empty() {
		w.logger.Warn("generator reply had no recognizable sections")
		return sections, nil
	}
	w.setBoards(generate.Apply(w.project.Boards, sections))
	return sections, nil
}

// Generating reports whether a script generation is in flight.
func (w *Workspace) Generating() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.generating
}
