package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/osusume/internal/engine"
	"github.com/hyperjump/osusume/internal/models"
	"github.com/hyperjump/osusume/internal/storage"
)

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("query request",
		zap.Int("user_id", req.UserID),
		zap.String("text", req.Text),
		zap.Int("k", req.K),
	)
	resp, err := s.currentEngine().Query(r.Context(), &req)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "book id must be an integer")
		return
	}
	book, err := s.storage.GetBook(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "book not found")
		return
	}
	s.respondJSON(w, http.StatusOK, book)
}

func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}
	query := r.URL.Query().Get("query")
	resp, err := s.storage.GetResultSet(r.Context(), userID, query)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "no saved results for user and query")
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	bookCount, err := s.storage.CountBooks(r.Context())
	if err != nil {
		s.logger.Error("status: count books failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	eng := s.currentEngine()
	resp := map[string]interface{}{
		"books":       bookCount,
		"catalog":     eng.CatalogSize(),
		"author_keys": eng.AuthorKeys(),
		"max_user_id": eng.MaxUserID(),
	}

	configInfo := map[string]interface{}{
		"default_k":            s.config.Engine.DefaultK,
		"default_boost_factor": s.config.Engine.DefaultBoostFactor,
		"embedding_dimensions": s.config.Embedding.Dimensions,
		"database_path":        s.config.Storage.DatabasePath,
		"author_index_path":    s.config.Storage.AuthorIndexPath,
		"rating_model_path":    s.config.Storage.RatingModelPath,
	}
	diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.AuthorIndexPath,
		s.config.Storage.RatingModelPath,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = configInfo
	s.respondJSON(w, http.StatusOK, resp)
}

// respondEngineError maps engine error kinds onto HTTP statuses. Invalid
// arguments are the caller's fault, an unavailable model is temporary,
// everything else is a server bug.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidArgument):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrModelUnavailable):
		s.logger.Error("model unavailable", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("query failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
