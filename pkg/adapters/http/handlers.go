package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/aretw0/aasedit"
	"github.com/aretw0/aasedit/pkg/document"
	"github.com/aretw0/aasedit/pkg/forms"
	"github.com/aretw0/aasedit/pkg/tree"
	"github.com/go-chi/chi/v5"
)

// commitResponse is the body of every commit endpoint.
type commitResponse struct {
	aasedit.CommitResult
	Error string `json:"error,omitempty"`
}

type nodeRef struct {
	ID string `json:"id"`
}

// selectedResponse describes the selected node without its subtree.
type selectedResponse struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Kind  string      `json:"kind"`
	Meta  tree.Meta   `json:"meta"`
	Draft forms.Draft `json:"draft"`
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sessions.List())
}

// OpenSession handles the POST /sessions request.
func (s *Server) OpenSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := decodeOptional(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ed, err := s.Sessions.Open(r.Context(), body.ID)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": ed.SessionID()})
}

// CloseSession handles the DELETE /sessions/{id} request.
func (s *Server) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Close(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// editor resolves the session of the request or writes a 404.
func (s *Server) editor(w http.ResponseWriter, r *http.Request) (*aasedit.Editor, bool) {
	ed, err := s.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return nil, false
	}
	return ed, true
}

// GetView handles the GET /sessions/{id} request.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	if ed, ok := s.editor(w, r); ok {
		writeJSON(w, http.StatusOK, ed.View())
	}
}

// GetTree handles the GET /sessions/{id}/tree request.
func (s *Server) GetTree(w http.ResponseWriter, r *http.Request) {
	if ed, ok := s.editor(w, r); ok {
		writeJSON(w, http.StatusOK, ed.Tree())
	}
}

// GetEnvironment handles the GET /sessions/{id}/environment request.
func (s *Server) GetEnvironment(w http.ResponseWriter, r *http.Request) {
	if ed, ok := s.editor(w, r); ok {
		writeJSON(w, http.StatusOK, ed.Environment())
	}
}

// GetValidation handles the GET /sessions/{id}/validation request.
func (s *Server) GetValidation(w http.ResponseWriter, r *http.Request) {
	if ed, ok := s.editor(w, r); ok {
		writeJSON(w, http.StatusOK, ed.Validation())
	}
}

// ExportDocument handles the GET /sessions/{id}/export request.
func (s *Server) ExportDocument(w http.ResponseWriter, r *http.Request) {
	enc, err := document.ParseEncoding(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ed, ok := s.editor(w, r)
	if !ok {
		return
	}
	data, err := ed.Export(enc)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", enc.ContentType())
	_, _ = w.Write(data)
}

// ImportDocument handles the POST /sessions/{id}/import request. The format
// query parameter wins over the Content-Type header.
func (s *Server) ImportDocument(w http.ResponseWriter, r *http.Request) {
	enc, err := requestEncoding(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	s.commit(w, r, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.Import(ctx, data, enc)
	})
}

// SelectNode handles the POST /sessions/{id}/select request.
func (s *Server) SelectNode(w http.ResponseWriter, r *http.Request) {
	var body nodeRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var selected selectedResponse
	err := s.Sessions.WithLock(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, ed *aasedit.Editor) error {
		if err := ed.Select(body.ID); err != nil {
			return err
		}
		selected = describe(ed)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, selected)
}

// ToggleNode handles the POST /sessions/{id}/toggle request.
func (s *Server) ToggleNode(w http.ResponseWriter, r *http.Request) {
	var body nodeRef
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var expanded bool
	err := s.Sessions.WithLock(r.Context(), chi.URLParam(r, "id"), func(_ context.Context, ed *aasedit.Editor) error {
		expanded = ed.Toggle(body.ID)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": body.ID, "expanded": expanded})
}

// GetSelected handles the GET /sessions/{id}/selected request.
func (s *Server) GetSelected(w http.ResponseWriter, r *http.Request) {
	if ed, ok := s.editor(w, r); ok {
		writeJSON(w, http.StatusOK, describe(ed))
	}
}

// ApplyEdits handles the PATCH /sessions/{id}/selected request.
func (s *Server) ApplyEdits(w http.ResponseWriter, r *http.Request) {
	var d forms.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.commit(w, r, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.ApplyEdits(ctx, d)
	})
}

// AddShell handles the POST /sessions/{id}/shells request.
func (s *Server) AddShell(w http.ResponseWriter, r *http.Request) {
	f := forms.DefaultShellForm()
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.commit(w, r, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.AddShell(ctx, f)
	})
}

// AddSubmodel handles the POST /sessions/{id}/submodels request.
func (s *Server) AddSubmodel(w http.ResponseWriter, r *http.Request) {
	f := forms.DefaultSubmodelForm()
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.commit(w, r, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.AddSubmodel(ctx, f)
	})
}

// AddElement handles the POST /sessions/{id}/elements request.
func (s *Server) AddElement(w http.ResponseWriter, r *http.Request) {
	var f forms.ElementForm
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.commit(w, r, func(ctx context.Context, ed *aasedit.Editor) (aasedit.CommitResult, error) {
		return ed.AddElement(ctx, f)
	})
}

// commit runs op under the session lock and writes its result.
func (s *Server) commit(w http.ResponseWriter, r *http.Request, op func(context.Context, *aasedit.Editor) (aasedit.CommitResult, error)) {
	var (
		res   aasedit.CommitResult
		opErr error
	)
	err := s.Sessions.WithLock(r.Context(), chi.URLParam(r, "id"), func(ctx context.Context, ed *aasedit.Editor) error {
		res, opErr = op(ctx, ed)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if opErr != nil {
		writeJSON(w, statusFor(opErr), commitResponse{CommitResult: res, Error: opErr.Error()})
		return
	}
	writeJSON(w, http.StatusOK, commitResponse{CommitResult: res})
}

func describe(ed *aasedit.Editor) selectedResponse {
	n := ed.Selected()
	return selectedResponse{
		ID:    n.ID,
		Label: n.Label,
		Kind:  n.Kind,
		Meta:  n.Meta,
		Draft: ed.Draft(),
	}
}

func requestEncoding(r *http.Request) (document.Encoding, error) {
	if name := r.URL.Query().Get("format"); name != "" {
		return document.ParseEncoding(name)
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return document.JSON, nil
	}
	for _, enc := range document.Encodings {
		if enc.ContentType() == mediaType {
			return enc, nil
		}
	}
	if mediaType == "application/x-yaml" || mediaType == "text/yaml" {
		return document.YAML, nil
	}
	return document.JSON, nil
}

// decodeOptional decodes a JSON body that may be empty.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
