package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/xavierca1/restro-crm/internal/entity"
	"github.com/xavierca1/restro-crm/internal/usecase"
)

// PerformanceClassifier is the analytics surface the handler needs.
type PerformanceClassifier interface {
	WellPerforming(ctx context.Context) ([]usecase.PerformanceSummary, error)
	UnderPerforming(ctx context.Context) ([]usecase.PerformanceSummary, error)
	LeadMetrics(ctx context.Context, leadID int64) (*usecase.LeadMetrics, error)
}

type PerformanceHandler struct {
	Classifier PerformanceClassifier
}

func NewPerformanceHandler(classifier PerformanceClassifier) *PerformanceHandler {
	return &PerformanceHandler{Classifier: classifier}
}

func (h *PerformanceHandler) HandleWellPerforming(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Classifier.WellPerforming(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *PerformanceHandler) HandleUnderPerforming(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Classifier.UnderPerforming(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *PerformanceHandler) HandleLeadMetrics(w http.ResponseWriter, r *http.Request) {
	leadID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || leadID <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	metrics, err := h.Classifier.LeadMetrics(r.Context(), leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}
