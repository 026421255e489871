// Package web serves the analysis form and a JSON endpoint over the pipeline.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"NewsAnalyzer/internal/domain"
	"NewsAnalyzer/internal/logging"
	"NewsAnalyzer/internal/presenter"
	"NewsAnalyzer/internal/usecase"
)

// Runner executes one analysis run.
type Runner interface {
	Run(ctx context.Context, company, ticker string, progress usecase.Progress) (domain.Report, error)
}

var _ Runner = (*usecase.Pipeline)(nil)

// Server holds the HTTP handlers.
type Server struct {
	runner      Runner
	maxArticles int
	logger      *slog.Logger
}

// NewServer wires the handlers to a runner.
func NewServer(runner Runner, maxArticles int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{runner: runner, maxArticles: maxArticles, logger: logger}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Get("/", s.form)
	r.Post("/analyze", s.analyze)
	r.Get("/api/analyze", s.analyzeJSON)
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) form(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	s.render(w, "head", nil)
	s.render(w, "form", formData{})
	s.render(w, "foot", nil)
}

// analyze streams status blocks while the run advances.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	data := formData{
		Company: strings.TrimSpace(r.PostFormValue("company")),
		Ticker:  strings.TrimSpace(r.PostFormValue("ticker")),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Company == "" {
		data.Error = "Please enter a company name."
		w.WriteHeader(http.StatusBadRequest)
		s.render(w, "head", nil)
		s.render(w, "form", data)
		s.render(w, "foot", nil)
		return
	}

	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	s.render(w, "head", nil)
	s.render(w, "form", data)
	flush()

	_, err := s.runner.Run(r.Context(), data.Company, data.Ticker, func(e domain.Event) {
		for _, m := range presenter.Messages(e, s.maxArticles) {
			s.render(w, "message", m)
		}
		flush()
	})
	if err != nil {
		s.logger.Warn("analysis rejected", "error", err, "request_id", middleware.GetReqID(r.Context()))
		s.render(w, "message", presenter.Message{Level: presenter.LevelError, Text: err.Error()})
	}
	s.render(w, "foot", nil)
	flush()
}

func (s *Server) analyzeJSON(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimSpace(r.URL.Query().Get("company"))
	ticker := strings.TrimSpace(r.URL.Query().Get("ticker"))

	report, err := s.runner.Run(r.Context(), company, ticker, nil)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrCompanyRequired) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, presenter.NewReportView(report))
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("render template", "template", name, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
