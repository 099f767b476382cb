package server

import (
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/errors"
	"github.com/matzehuels/auteur/pkg/imageref"
	"github.com/matzehuels/auteur/pkg/interaction"
	"github.com/matzehuels/auteur/pkg/pipeline"
	"github.com/matzehuels/auteur/pkg/plugin"
	"github.com/matzehuels/auteur/pkg/render/sink"
	"github.com/matzehuels/auteur/pkg/workspace"
)

// =============================================================================
// Canvas
// =============================================================================

func (s *Server) handleCanvasHTML(w http.ResponseWriter, r *http.Request) {
	s.writeFormat(w, r, workspace.FormatHTML)
}

func (s *Server) handleCanvasSVG(w http.ResponseWriter, r *http.Request) {
	s.writeFormat(w, r, workspace.FormatSVG)
}

func (s *Server) writeFormat(w http.ResponseWriter, r *http.Request, format string) {
	data, err := s.ws.Render(r.Context(), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(data)
}

// handleRender serves any pipeline format through the cached runner.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	opts := pipeline.Options{Formats: []string{format}}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}
	res, err := s.runner.Render(r.Context(), s.ws, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("ETag", strconv.Quote(res.ProjectHash))
	w.Write(res.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	data, err := sink.RenderJSON(s.ws.Layout())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// =============================================================================
// Kinds & Project
// =============================================================================

type kindResponse struct {
	Type string `json:"type"`
	plugin.Meta
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	menu := s.ws.Registry().Menu()
	out := make([]kindResponse, len(menu))
	for i, d := range menu {
		out[i] = kindResponse{Type: d.Type(), Meta: d.Meta()}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ws.Snapshot())
}

type projectPatch struct {
	Name     *string         `json:"name,omitempty"`
	Settings *board.Settings `json:"settings,omitempty"`
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectPatch
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Settings != nil {
		if err := s.ws.UpdateSettings(*req.Settings); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if req.Name != nil {
		if err := s.ws.Rename(*req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.ws.Snapshot())
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if s.save == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "saving is not enabled"))
		return
	}
	if err := s.save(r.Context(), s.ws.Snapshot()); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type gearRequest struct {
	Name string         `json:"name"`
	Type board.GearType `json:"type"`
}

func (s *Server) handleAddGear(w http.ResponseWriter, r *http.Request) {
	var req gearRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	gear, item, err := s.ws.Snapshot().Gear.Add(req.Name, req.Type)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.ws.SetGear(gear)
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleRemoveGear(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gear, ok := s.ws.Snapshot().Gear.Remove(id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "gear item %s not found", id))
		return
	}
	s.ws.SetGear(gear)
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Boards & Notes
// =============================================================================

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ws.Boards())
}

func (s *Server) handleAddBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	b, err := s.ws.AddBoard(req.Type)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, ok := s.ws.Board(id)
	if !ok {
		s.writeError(w, r, boardNotFound(id))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdateBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch board.Patch
	if err := decode(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	if patch.Title != nil {
		if err := errors.ValidateTitle(*patch.Title); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if patch.Notes != nil {
		for _, n := range *patch.Notes {
			if err := n.Validate(); err != nil {
				s.writeError(w, r, err)
				return
			}
		}
	}
	if !s.ws.UpdateBoard(id, patch) {
		if _, ok := s.ws.Board(id); ok {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidBoard, "board %s does not keep notes", id))
			return
		}
		s.writeError(w, r, boardNotFound(id))
		return
	}
	b, _ := s.ws.Board(id)
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleRemoveBoard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.ws.RemoveBoard(id) {
		s.writeError(w, r, boardNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFrame serves the rendered markup of one board. ?fullscreen=true
// selects the expanded view.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	fullscreen, _ := strconv.ParseBool(r.URL.Query().Get("fullscreen"))
	f, ok := s.ws.RenderBoard(r.Context(), id, fullscreen)
	if !ok {
		s.writeError(w, r, boardNotFound(id))
		return
	}
	w.Header().Set("Content-Type", contentTypes["html"])
	w.Write([]byte(f.HTML))
}

// noteRequest adds a text note, or an image note when imageUrl is set.
type noteRequest struct {
	Text     string `json:"content"`
	ImageRef string `json:"imageUrl"`
	Caption  string `json:"caption"`
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req noteRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.ImageRef != "" {
		n, err := s.ws.AttachImage(id, req.ImageRef, req.Caption)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, n)
		return
	}
	if _, ok := s.ws.Board(id); !ok {
		s.writeError(w, r, boardNotFound(id))
		return
	}
	n, ok := s.ws.AddTextNote(id, req.Text)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidBoard, "board %s does not take notes", id))
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, noteID := chi.URLParam(r, "id"), chi.URLParam(r, "note")
	var patch board.NotePatch
	if err := decode(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.ws.UpdateNote(id, noteID, patch) {
		if b, ok := s.ws.Board(id); ok && slices.ContainsFunc(b.Notes, func(n board.Note) bool { return n.ID == noteID }) {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidNote, "patch does not fit note %s", noteID))
			return
		}
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "note %s on board %s not found", noteID, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveNote(w http.ResponseWriter, r *http.Request) {
	id, noteID := chi.URLParam(r, "id"), chi.URLParam(r, "note")
	if !s.ws.RemoveNote(id, noteID) {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "note %s on board %s not found", noteID, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetFullscreen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.ws.SetFullscreen(id) {
		s.writeError(w, r, boardNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCloseFullscreen(w http.ResponseWriter, r *http.Request) {
	s.ws.SetFullscreen("")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Pointer
// =============================================================================

type pointerRequest struct {
	Kind    string  `json:"kind,omitempty"`
	BoardID string  `json:"id,omitempty"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type pointerResponse struct {
	State   string `json:"state"`
	BoardID string `json:"id,omitempty"`
	Changed bool   `json:"changed"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	W       int    `json:"w"`
	H       int    `json:"h"`
}

func (s *Server) pointerState() pointerResponse {
	st, id := s.ws.Interaction()
	return pointerResponse{State: st.String(), BoardID: id}
}

func (s *Server) handlePointerDown(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	kind, ok := interaction.ParseKind(req.Kind)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown gesture kind %q (want drag or resize)", req.Kind))
		return
	}
	if !s.ws.PointerDown(kind, req.BoardID, req.X, req.Y) {
		if _, exists := s.ws.Board(req.BoardID); !exists {
			s.writeError(w, r, boardNotFound(req.BoardID))
			return
		}
	}
	writeJSON(w, http.StatusOK, s.pointerState())
}

// handlePointerMove reports the placement change, if the move produced one.
// Moves while idle are accepted and ignored.
func (s *Server) handlePointerMove(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, changed := s.ws.PointerMove(req.X, req.Y)
	resp := s.pointerState()
	if changed {
		resp.Changed = true
		resp.BoardID = c.BoardID
		resp.X, resp.Y, resp.W, resp.H = c.X, c.Y, c.W, c.H
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePointerUp(w http.ResponseWriter, r *http.Request) {
	s.ws.PointerUp()
	writeJSON(w, http.StatusOK, s.pointerState())
}

func (s *Server) handlePointerLeave(w http.ResponseWriter, r *http.Request) {
	s.ws.PointerLeave()
	writeJSON(w, http.StatusOK, s.pointerState())
}

// =============================================================================
// Images
// =============================================================================

type imageStateResponse struct {
	plugin.ImageState
	Pending bool `json:"pendingUpload"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleImageState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.ws.Board(id); !ok {
		s.writeError(w, r, boardNotFound(id))
		return
	}
	pending, _ := s.ws.PendingUpload()
	writeJSON(w, http.StatusOK, imageStateResponse{ImageState: s.ws.ImageState(id), Pending: pending == id})
}

// handleUploadImage takes the raw image as the request body. The caption
// comes from the query string.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, err := io.ReadAll(io.LimitReader(r.Body, imageref.MaxSize+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read image"))
		return
	}
	ref, err := imageref.FromBytes(r.Header.Get("Content-Type"), data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	n, err := s.ws.AttachImage(id, ref, r.URL.Query().Get("caption"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleRequestUpload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.ws.Board(id); !ok {
		s.writeError(w, r, boardNotFound(id))
		return
	}
	if !s.ws.RequestImageUpload(id) {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidBoard, "board %s does not take images", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImagePrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req promptRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if !s.ws.SetImagePrompt(id, req.Prompt) {
		s.writeError(w, r, boardNotFound(id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	n, err := s.ws.GenerateImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}
