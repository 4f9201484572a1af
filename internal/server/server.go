package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"marinebot/internal/domain"
)

// QueryRequest is the incoming question payload.
type QueryRequest struct {
	Question string `json:"question"`
}

// Server exposes the answering pipeline over HTTP. It owns serialization
// and transport only; all decision logic lives in the pipeline.
type Server struct {
	pipeline domain.Pipeline
	log      *zap.Logger
}

func New(pipeline domain.Pipeline, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{pipeline: pipeline, log: log}
}

// Handler returns the HTTP routes of the service.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/query", s.handleQuery)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Error("failed to decode request", zap.Error(err))
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "Question is required", http.StatusBadRequest)
		return
	}

	answer := s.pipeline.Ask(r.Context(), req.Question)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(answer); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
		return
	}
	s.log.Info("query processed",
		zap.String("status", answer.Status),
		zap.Bool("marine_related", answer.MarineRelated))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
