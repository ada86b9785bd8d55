package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/restro-crm/internal/entity"
	"github.com/xavierca1/restro-crm/internal/infra/http/middleware"
	"github.com/xavierca1/restro-crm/internal/usecase"
)

// CallScheduler is the cadence surface the handler needs.
type CallScheduler interface {
	LeadsDueForCall(ctx context.Context) ([]*entity.Lead, error)
	RecordCall(ctx context.Context, leadID int64, userID *int64) (*entity.Lead, error)
	UpdateCallFrequency(ctx context.Context, leadID int64, frequencyDays int) (*entity.Lead, error)
}

type LeadTransferrer interface {
	Execute(ctx context.Context, oldUserID, newUserID int64) (int64, error)
}

type LeadHandler struct {
	LeadRepo    entity.LeadRepositoryInterface
	Scheduler   CallScheduler
	Transferrer LeadTransferrer
}

func NewLeadHandler(leadRepo entity.LeadRepositoryInterface, scheduler CallScheduler, transferrer LeadTransferrer) *LeadHandler {
	return &LeadHandler{
		LeadRepo:    leadRepo,
		Scheduler:   scheduler,
		Transferrer: transferrer,
	}
}

type createLeadRequest struct {
	RestaurantName string   `json:"restaurantName"`
	CuisineType    []string `json:"cuisineType"`
	Location       string   `json:"location"`
	LeadSource     string   `json:"leadSource"`
	LeadStatus     string   `json:"leadStatus"`
	KamID          int64    `json:"kamId"`
}

func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := entity.NewLead(req.RestaurantName, req.Location, req.LeadSource, req.CuisineType, req.KamID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.LeadStatus != "" {
		lead.LeadStatus = req.LeadStatus
	}

	if err := h.LeadRepo.Create(r.Context(), lead); err != nil {
		if errors.Is(err, entity.ErrLeadAlreadyExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create lead")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Lead added successfully",
		"lead":    lead,
	})
}

func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filters := entity.LeadFilters{
		LeadStatus: r.URL.Query().Get("leadStatus"),
	}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "userId must be an integer")
			return
		}
		filters.UserID = userID
	}

	leads, err := h.LeadRepo.FindAll(r.Context(), filters)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch leads")
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	lead, err := h.LeadRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Lead not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

type updateLeadRequest struct {
	RestaurantName *string   `json:"restaurantName"`
	CuisineType    *[]string `json:"cuisineType"`
	Location       *string   `json:"location"`
	LeadSource     *string   `json:"leadSource"`
	LeadStatus     *string   `json:"leadStatus"`
	UserID         *int64    `json:"userId"`
}

// HandleUpdate applies a partial update. Scheduling fields are not
// accepted here; cadence changes go through the scheduler endpoints.
func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.LeadRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Lead not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch lead")
		return
	}

	if req.RestaurantName != nil {
		lead.RestaurantName = *req.RestaurantName
	}
	if req.CuisineType != nil {
		lead.CuisineType = *req.CuisineType
	}
	if req.Location != nil {
		lead.Location = *req.Location
	}
	if req.LeadSource != nil {
		lead.LeadSource = *req.LeadSource
	}
	if req.LeadStatus != nil {
		lead.LeadStatus = *req.LeadStatus
	}
	if req.UserID != nil {
		lead.UserID = *req.UserID
	}

	if err := lead.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.LeadRepo.Update(r.Context(), lead); err != nil {
		if errors.Is(err, entity.ErrLeadAlreadyExists) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.LeadRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Lead not found"})
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete lead")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRequiringCalls lists every lead whose next call is due. The 404
// on an empty list is part of the original API contract and kept as-is.
func (h *LeadHandler) HandleRequiringCalls(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Scheduler.LeadsDueForCall(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(leads) == 0 {
		writeError(w, http.StatusNotFound, "No leads requiring calls today")
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

type recordCallRequest struct {
	UserID *int64 `json:"userId"`
}

func (h *LeadHandler) HandleRecordCall(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseIDParam(w, r, "leadId")
	if !ok {
		return
	}

	// The body is optional; it only carries the acting user.
	var req recordCallRequest
	json.NewDecoder(r.Body).Decode(&req)

	lead, err := h.Scheduler.RecordCall(r.Context(), leadID, req.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RecordCallLogged()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Call recorded successfully",
		"lead":    lead,
	})
}

type updateCallFrequencyRequest struct {
	CallFrequency *int `json:"callFrequency"`
}

func (h *LeadHandler) HandleUpdateCallFrequency(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseIDParam(w, r, "leadId")
	if !ok {
		return
	}

	var req updateCallFrequencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CallFrequency == nil {
		writeError(w, http.StatusBadRequest, "callFrequency is required")
		return
	}

	lead, err := h.Scheduler.UpdateCallFrequency(r.Context(), leadID, *req.CallFrequency)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCallFrequency):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, entity.ErrLeadNotFound):
			writeError(w, http.StatusNotFound, "Lead not found")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Call frequency updated successfully",
		"lead":    lead,
	})
}

type transferLeadsRequest struct {
	OldUserID int64 `json:"oldUserId"`
	NewUserID int64 `json:"newUserId"`
}

func (h *LeadHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferLeadsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	count, err := h.Transferrer.Execute(r.Context(), req.OldUserID, req.NewUserID)
	if err != nil {
		var vErr usecase.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if count == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"message": "No leads found for the specified oldUserId.",
		})
		return
	}

	middleware.RecordLeadTransfer(count)

	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Leads transferred successfully",
		"updatedLeadsCount": count,
	})
}

func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
