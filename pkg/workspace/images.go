package workspace

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/observability"
	"github.com/matzehuels/auteur/pkg/plugin"
)

// AttachImage appends an image note to a board whose kind takes images and
// clears a matching pending upload.
func (w *Workspace) AttachImage(boardID, ref, caption string) (board.Note, error) {
	if err := errors.ValidateImageRef(ref); err != nil {
		return board.Note{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.upload == boardID {
		w.upload = ""
	}
	return w.attachImage(boardID, ref, caption)
}

func (w *Workspace) attachImage(boardID, ref, caption string) (board.Note, error) {
	b, ok := w.project.Boards.Find(boardID)
	if !ok {
		return board.Note{}, errors.New(errors.ErrCodeBoardNotFound, "board %s not found", boardID)
	}
	if !w.takes(b, plugin.TakesImages) {
		return board.Note{}, errors.New(errors.ErrCodeInvalidBoard, "board %s of type %s does not take images", boardID, b.Type)
	}
	n := board.NewImageNote(ref, caption)
	out, _ := w.project.Boards.AppendNote(boardID, n)
	w.setBoards(out)
	observability.Workspace().OnBoardUpdated(boardID)
	return n, nil
}

// ImageState returns the image-generation state of a board.
func (w *Workspace) ImageState(boardID string) plugin.ImageState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.images[boardID]
}

// SetImagePrompt stores the prompt typed into a board's footer.
func (w *Workspace) SetImagePrompt(boardID, prompt string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.project.Boards.Find(boardID); !ok {
		return false
	}
	st := w.images[boardID]
	st.Prompt = prompt
	w.images[boardID] = st
	return true
}

// GenerateImage asks the generator for an image from the board's stored
// prompt and attaches it with the prompt as caption. The lock is released
// while the generator runs. Failures are recorded in the board's image state
// and returned; nothing else changes.
func (w *Workspace) GenerateImage(ctx context.Context, boardID string) (board.Note, error) {
	w.mu.Lock()
	st := w.images[boardID]
	_, exists := w.project.Boards.Find(boardID)
	switch {
	case !exists:
		w.mu.Unlock()
		return board.Note{}, errors.New(errors.ErrCodeBoardNotFound, "board %s not found", boardID)
	case strings.TrimSpace(st.Prompt) == "":
		w.mu.Unlock()
		return board.Note{}, errors.New(errors.ErrCodeInvalidInput, "board %s has no image prompt", boardID)
	case st.Loading:
		w.mu.Unlock()
		return board.Note{}, errors.New(errors.ErrCodeInvalidInput, "image generation already running for board %s", boardID)
	case w.generator == nil:
		w.mu.Unlock()
		return board.Note{}, errors.New(errors.ErrCodeUnsupported, "no generator configured")
	}
	prompt := st.Prompt
	st.Loading, st.Err = true, ""
	w.images[boardID] = st
	gen := w.generator
	w.mu.Unlock()

	start := time.Now()
	ref, err := gen.Image(ctx, prompt)
	observability.Render().OnGenerate(ctx, "image", time.Since(start), err)

	w.mu.Lock()
	defer w.mu.Unlock()
	_, exists = w.project.Boards.Find(boardID)
	st = w.images[boardID]
	st.Loading = false
	if err != nil {
		st.Err = errors.UserMessage(err)
		if exists {
			w.images[boardID] = st
		}
		w.logger.Warn("image generation failed", "board", boardID, "err", err)
		return board.Note{}, errors.Wrap(errors.ErrCodeGeneration, err, "generate image for board %s", boardID)
	}
	n, err := w.attachImage(boardID, ref, prompt)
	if err != nil {
		// removed while the generator ran
		if exists {
			st.Err = errors.UserMessage(err)
			w.images[boardID] = st
		}
		return board.Note{}, err
	}
	st.Prompt = ""
	w.images[boardID] = st
	return n, nil
}
