// Package server exposes session-scoped piece catalogs over HTTP.
//
// Routes:
//
//	POST   /sessions                 create a session
//	DELETE /sessions/{id}            drop a session
//	GET    /sessions/{id}/pieces     list pieces
//	POST   /sessions/{id}/pieces     add a piece
//	DELETE /sessions/{id}/pieces     clear the catalog
//	GET    /sessions/{id}/plot.png   raster plot
//	GET    /sessions/{id}/plot.svg   vector plot
//	GET    /sessions/{id}/analysis   solution report
//	GET    /health                   liveness check
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/gogpu/odeglue"
	"github.com/gogpu/odeglue/analysis"
	"github.com/gogpu/odeglue/plot"
)

// Server routes requests to the catalogs of a session store.
type Server struct {
	sessions *odeglue.Sessions
	opts     options
	mux      *http.ServeMux
}

// New creates a Server over sessions. A nil store gets a fresh one.
func New(sessions *odeglue.Sessions, opts ...Option) *Server {
	if sessions == nil {
		sessions = odeglue.NewSessions()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Server{sessions: sessions, opts: o, mux: http.NewServeMux()}

	s.mux.HandleFunc("POST /sessions", s.createSession)
	s.mux.HandleFunc("DELETE /sessions/{id}", s.deleteSession)
	s.mux.HandleFunc("GET /sessions/{id}/pieces", s.listPieces)
	s.mux.HandleFunc("POST /sessions/{id}/pieces", s.addPiece)
	s.mux.HandleFunc("DELETE /sessions/{id}/pieces", s.clearPieces)
	s.mux.HandleFunc("GET /sessions/{id}/plot.png", s.plotPNG)
	s.mux.HandleFunc("GET /sessions/{id}/plot.svg", s.plotSVG)
	s.mux.HandleFunc("GET /sessions/{id}/analysis", s.analyze)
	s.mux.HandleFunc("GET /health", s.health)
	return s
}

// Sessions returns the store the server works on.
func (s *Server) Sessions() *odeglue.Sessions { return s.sessions }

// ServeHTTP implements http.Handler. Panics in handlers are logged and
// answered with 500.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			odeglue.Logger().Error("server: panic in handler",
				"method", r.Method, "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		odeglue.Logger().Info("server: listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		odeglue.Logger().Info("server: shutting down", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		odeglue.Logger().Warn("server: encode response", "err", err)
	}
}

// writeError maps err to a status code and writes it as {"error": "..."}.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, odeglue.ErrUnknownSession):
		status = http.StatusNotFound
	case errors.As(err, &maxErr):
		status = http.StatusRequestEntityTooLarge
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", odeglue.ErrUnknownSession, r.PathValue("id"))
	}
	return id, nil
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.maxBody)
	defer r.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type createRequest struct {
	Lang string `json:"lang"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	req := createRequest{Lang: r.URL.Query().Get("lang")}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, fmt.Errorf("invalid JSON: %w", err))
			return
		}
	}
	lang := s.opts.lang
	if req.Lang != "" {
		lang = odeglue.MatchLanguage(req.Lang)
	}
	id := s.sessions.Create(lang)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String(), "lang": lang.String()})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err == nil {
		err = s.sessions.Delete(id)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type listResponse struct {
	Lang   string      `json:"lang"`
	Pieces []pieceJSON `json:"pieces"`
	Text   string      `json:"text"`
}

func (s *Server) listPieces(w http.ResponseWriter, r *http.Request) {
	pieces, lang, err := s.snapshot(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := listResponse{Lang: lang.String(), Pieces: make([]pieceJSON, len(pieces))}
	for i, p := range pieces {
		resp.Pieces[i] = encodePiece(p)
	}
	var sb strings.Builder
	if err := plot.WriteList(&sb, pieces, lang); err != nil {
		writeError(w, err)
		return
	}
	resp.Text = sb.String()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) addPiece(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	body, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	var added odeglue.Piece
	err = s.sessions.Do(id, func(c *odeglue.Catalog) error {
		p, err := decodePiece(body, c.Toolbox())
		if err != nil {
			return err
		}
		c.Append(p)
		added = p
		return nil
	})
	if err != nil {
		odeglue.Logger().Debug("server: piece rejected", "session", id, "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, encodePiece(added))
}

func (s *Server) clearPieces(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err == nil {
		err = s.sessions.Do(id, func(c *odeglue.Catalog) error {
			c.Clear()
			return nil
		})
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) snapshot(r *http.Request) ([]odeglue.Piece, language.Tag, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, language.Und, err
	}
	return s.sessions.Snapshot(id)
}

// plotOptions adds the width and height query parameters to the
// configured plot options.
func (s *Server) plotOptions(r *http.Request) []plot.Option {
	opts := append([]plot.Option(nil), s.opts.plot...)
	q := r.URL.Query()
	w, werr := strconv.Atoi(q.Get("width"))
	h, herr := strconv.Atoi(q.Get("height"))
	if werr == nil && herr == nil && w <= s.opts.maxSize && h <= s.opts.maxSize {
		opts = append(opts, plot.WithSize(w, h))
	}
	return opts
}

func (s *Server) plotPNG(w http.ResponseWriter, r *http.Request) {
	pieces, _, err := s.snapshot(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := plot.New(s.plotOptions(r)...).Render(&buf, s.opts.ev.EvaluateAll(pieces)); err != nil {
		odeglue.Logger().Error("server: render png", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}

func (s *Server) plotSVG(w http.ResponseWriter, r *http.Request) {
	pieces, _, err := s.snapshot(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := plot.RenderSVG(&buf, s.opts.ev.EvaluateAll(pieces), s.plotOptions(r)...); err != nil {
		odeglue.Logger().Error("server: render svg", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = buf.WriteTo(w)
}

type analysisResponse struct {
	analysis.Report
	Solved bool `json:"solved"`
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	pieces, _, err := s.snapshot(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report := analysis.Check(pieces, analysis.WithEvaluator(s.opts.ev))
	writeJSON(w, http.StatusOK, analysisResponse{Report: report, Solved: report.Solved()})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
