package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/restro-crm/internal/entity"
)

type InteractionHandler struct {
	InteractionRepo entity.InteractionRepositoryInterface
	LeadRepo        entity.LeadRepositoryInterface
}

func NewInteractionHandler(interactionRepo entity.InteractionRepositoryInterface, leadRepo entity.LeadRepositoryInterface) *InteractionHandler {
	return &InteractionHandler{
		InteractionRepo: interactionRepo,
		LeadRepo:        leadRepo,
	}
}

type createInteractionRequest struct {
	LeadID          int64  `json:"leadId"`
	UserID          *int64 `json:"userId"`
	ContactID       *int64 `json:"contactId"`
	OrderID         *int64 `json:"orderId"`
	InteractionType string `json:"interactionType"`
	InteractionDate string `json:"interactionDate"`
	Duration        *int   `json:"duration"`
	Outcome         string `json:"outcome"`
	Notes           string `json:"notes"`
}

func (h *InteractionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	interaction := &entity.Interaction{
		LeadID:          req.LeadID,
		UserID:          req.UserID,
		ContactID:       req.ContactID,
		OrderID:         req.OrderID,
		InteractionType: req.InteractionType,
		DurationMin:     req.Duration,
		Outcome:         req.Outcome,
		Notes:           req.Notes,
	}

	if req.InteractionDate != "" {
		parsed, ok := parseDate(req.InteractionDate)
		if !ok {
			writeError(w, http.StatusBadRequest, "interactionDate must be a valid date")
			return
		}
		interaction.InteractionDate = parsed
	}

	if err := interaction.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.LeadRepo.FindByID(r.Context(), interaction.LeadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Lead not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch lead")
		return
	}

	if err := h.InteractionRepo.Create(r.Context(), interaction); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create interaction")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":     "Interaction logged successfully",
		"interaction": interaction,
	})
}

func (h *InteractionHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	interaction, err := h.InteractionRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrInteractionNotFound) {
			writeError(w, http.StatusNotFound, "Interaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch interaction")
		return
	}

	writeJSON(w, http.StatusOK, interaction)
}

func (h *InteractionHandler) HandleListByLead(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseIDParam(w, r, "leadId")
	if !ok {
		return
	}

	if _, err := h.LeadRepo.FindByID(r.Context(), leadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Lead not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch lead")
		return
	}

	interactions, err := h.InteractionRepo.FindByLeadID(r.Context(), leadID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch interactions")
		return
	}

	writeJSON(w, http.StatusOK, interactions)
}

type updateInteractionRequest struct {
	InteractionType *string `json:"interactionType"`
	InteractionDate *string `json:"interactionDate"`
	Duration        *int    `json:"duration"`
	Outcome         *string `json:"outcome"`
	Notes           *string `json:"notes"`
}

func (h *InteractionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	interaction, err := h.InteractionRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrInteractionNotFound) {
			writeError(w, http.StatusNotFound, "Interaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch interaction")
		return
	}

	if req.InteractionType != nil {
		interaction.InteractionType = *req.InteractionType
	}
	if req.InteractionDate != nil {
		parsed, ok := parseDate(*req.InteractionDate)
		if !ok {
			writeError(w, http.StatusBadRequest, "interactionDate must be a valid date")
			return
		}
		interaction.InteractionDate = parsed
	}
	if req.Duration != nil {
		interaction.DurationMin = req.Duration
	}
	if req.Outcome != nil {
		interaction.Outcome = *req.Outcome
	}
	if req.Notes != nil {
		interaction.Notes = *req.Notes
	}

	if err := interaction.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.InteractionRepo.Update(r.Context(), interaction); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update interaction")
		return
	}

	writeJSON(w, http.StatusOK, interaction)
}

func (h *InteractionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.InteractionRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrInteractionNotFound) {
			writeError(w, http.StatusNotFound, "Interaction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete interaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
