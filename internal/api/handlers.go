package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/chatlens/relationship-analyzer/internal/core"
)

type APIHandler struct {
	analysisService *core.AnalysisService
}

func NewAPIHandler(as *core.AnalysisService) *APIHandler {
	return &APIHandler{analysisService: as}
}

type AnalyzeRequest struct {
	ChatData  string   `json:"chatData"`
	FileNames []string `json:"fileNames"`
	APIKey    string   `json:"apiKey"`
}

func (h *APIHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEnvelope(w, http.StatusBadRequest, core.AnalysisEnvelope{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
		})
		return
	}

	// Empty-but-present fileNames is accepted; only an absent list is a
	// missing field. No further validation happens here: credential format
	// and prompt size are the upstream API's problem.
	if req.ChatData == "" || req.FileNames == nil || req.APIKey == "" {
		writeEnvelope(w, http.StatusBadRequest, core.AnalysisEnvelope{
			Success: false,
			Error:   "Missing required fields: chatData, fileNames, and apiKey",
		})
		return
	}

	data, err := h.analysisService.Analyze(r.Context(), requestID, req.ChatData, req.FileNames, req.APIKey)
	if err != nil {
		log.Printf("[%s] Analysis error: %v", requestID, err)
		writeEnvelope(w, http.StatusInternalServerError, core.AnalysisEnvelope{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	writeEnvelope(w, http.StatusOK, core.AnalysisEnvelope{
		Success: true,
		Data:    data,
	})
}

func (h *APIHandler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Hello from Relationship Analyzer server!"})
}

func writeEnvelope(w http.ResponseWriter, status int, envelope core.AnalysisEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Printf("Error encoding response envelope: %v", err)
	}
}
