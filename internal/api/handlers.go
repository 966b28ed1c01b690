package api

import (
	"encoding/json"
	"net/http"

	"github.com/introflow/replybrain/internal/anchor"
	"github.com/introflow/replybrain/internal/classify"
	"github.com/introflow/replybrain/internal/common"
	"github.com/introflow/replybrain/internal/engine"
	"github.com/introflow/replybrain/internal/model"
)

type classifyRequest struct {
	Inbound string `json:"inbound"`
}

type classifyResponse struct {
	RequestID      string                     `json:"request_id"`
	Classification model.ClassificationResult `json:"classification"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := s.engine.Classify(req.Inbound)
	common.LogDebug("classified inbound reply", common.Fields{
		"request_id": reqID(r), "primary": result.Primary, "signals": result.Signals})

	respondJSON(w, http.StatusOK, classifyResponse{
		RequestID:      reqID(r),
		Classification: result,
	})
}

type composeRequest struct {
	Outbound string `json:"outbound"`
}

type composeResponse struct {
	RequestID string           `json:"request_id"`
	Anchors   model.AnchorPack `json:"anchors"`
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req composeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	pack := s.engine.Compose(req.Outbound)
	common.LogDebug("composed anchor pack", common.Fields{"request_id": reqID(r), "quality": pack.Quality})

	respondJSON(w, http.StatusOK, composeResponse{
		RequestID: reqID(r),
		Anchors:   pack,
	})
}

type interpretRequest struct {
	Inbound  string `json:"inbound"`
	Outbound string `json:"outbound"`
}

type interpretResponse struct {
	RequestID string `json:"request_id"`
	engine.Interpretation
}

func (s *Server) handleInterpret(w http.ResponseWriter, r *http.Request) {
	var req interpretRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	interp := s.engine.Interpret(req.Inbound, req.Outbound)
	common.LogDebug("interpreted reply pair", common.Fields{
		"request_id":   reqID(r),
		"primary":      interp.Classification.Primary,
		"template_key": interp.TemplateKey,
	})

	respondJSON(w, http.StatusOK, interpretResponse{
		RequestID:      reqID(r),
		Interpretation: interp,
	})
}

type patternsResponse struct {
	RequestID string            `json:"request_id"`
	Families  []classify.Family `json:"families"`
	Forbidden []string          `json:"forbidden"`
}

// handlePatterns exposes the engine's pattern tables as inspectable data.
func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, patternsResponse{
		RequestID: reqID(r),
		Families:  s.engine.Families(),
		Forbidden: anchor.ForbiddenPatterns(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
