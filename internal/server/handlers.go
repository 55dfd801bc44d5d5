package server

import (
	"encoding/json"
	"net/http"

	"github.com/greenzone-vis/greenzone/pkg/chart/sink"
	"github.com/greenzone-vis/greenzone/pkg/errors"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	_, sc, err := s.chartFor(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	s.renderPage(w, sc.ch)
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	_, sc, err := s.chartFor(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	opts := []sink.SVGOption{}
	if s.opts.LastUpdated != "" {
		opts = append(opts, sink.WithLastUpdated(s.opts.LastUpdated))
	}

	sc.mu.Lock()
	svg := sink.RenderSVG(sc.ch, opts...)
	sc.mu.Unlock()

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(svg)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, sc, err := s.chartFor(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	query := r.FormValue("q")

	sc.mu.Lock()
	sc.ch.Search(query)
	sess.Query = sc.ch.LastSearched()
	matched := sc.ch.Searched() != nil
	sc.mu.Unlock()

	if err := s.opts.Sessions.Set(r.Context(), sess); err != nil {
		s.fail(w, err)
		return
	}

	s.writeJSON(w, map[string]any{
		"query":   sess.Query,
		"matched": matched,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, sc, err := s.chartFor(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	sc.mu.Lock()
	sc.ch.Reset()
	sc.mu.Unlock()

	sess.Query = ""
	if err := s.opts.Sessions.Set(r.Context(), sess); err != nil {
		s.fail(w, err)
		return
	}

	s.writeJSON(w, map[string]any{"query": ""})
}

func (s *Server) handleCompletions(w http.ResponseWriter, r *http.Request) {
	_, sc, err := s.chartFor(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	sc.mu.Lock()
	completions := sc.ch.Completions()
	sc.mu.Unlock()
	s.writeJSON(w, completions)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.opts.Snapshots == nil {
		http.NotFound(w, r)
		return
	}
	snaps, err := s.opts.Snapshots.List(r.Context(), 20)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, snaps)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "err", err)

	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidBounds, errors.ErrCodeBadValue:
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": errors.UserMessage(err)})
}
