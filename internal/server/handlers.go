package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/cancerqa/internal/language"
	"github.com/hyperjump/cancerqa/internal/models"
	"github.com/hyperjump/cancerqa/internal/resolver"
	"github.com/hyperjump/cancerqa/internal/storage"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "API is running. Data should be pre-loaded."})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.corpus.Current() == nil {
		s.respondError(w, http.StatusServiceUnavailable, resolver.ErrNotReady.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(s.config.MaxQuestionLength); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.answerer.Resolve(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, resolver.ErrNotReady) {
			s.respondError(w, http.StatusServiceUnavailable, "Data not loaded yet. Please try again in a moment.")
			return
		}
		s.logger.Error("ask failed", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := models.StatusResponse{Threshold: s.threshold}
	if c := s.corpus.Current(); c != nil {
		resp.Ready = true
		resp.Entries = c.Len()
		resp.Sources = c.Sources()
		resp.LoadedAt = c.LoadedAt()
		if n, err := storage.SourceBytes(resp.Sources...); err == nil {
			resp.SourceBytes = n
		}
		if rec, err := storage.DescribeImport(r.Context(), resp.Sources...); err != nil {
			s.logger.Debug("import record unavailable", zap.Error(err))
		} else {
			resp.Import = rec
		}
	}
	if err := s.corpus.LastError(); err != nil {
		resp.LastError = err.Error()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.corpus.Reload(r.Context()); err != nil {
		s.logger.Warn("reload request failed", zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c := s.corpus.Current()
	s.respondJSON(w, http.StatusOK, map[string]any{"status": "reloaded", "entries": c.Len()})
}

// handleSamples lists the sample questions, optionally only those in ?lang=en|bn.
func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	questions := SampleQuestions
	if code := r.URL.Query().Get("lang"); code != "" {
		lang, err := models.ParseLanguage(code)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		questions = make([]string, 0, len(SampleQuestions))
		for _, q := range SampleQuestions {
			if language.Detect(q) == lang {
				questions = append(questions, q)
			}
		}
	}
	s.respondJSON(w, http.StatusOK, map[string][]string{"questions": questions})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, models.ErrorResponse{Error: message})
}
