package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/restro-crm/internal/entity"
)

type ContactHandler struct {
	ContactRepo entity.ContactRepositoryInterface
	LeadRepo    entity.LeadRepositoryInterface
}

func NewContactHandler(contactRepo entity.ContactRepositoryInterface, leadRepo entity.LeadRepositoryInterface) *ContactHandler {
	return &ContactHandler{
		ContactRepo: contactRepo,
		LeadRepo:    leadRepo,
	}
}

type createContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseIDParam(w, r, "leadId")
	if !ok {
		return
	}

	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
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

	// Same phone number twice is almost always a double submit.
	if _, err := h.ContactRepo.FindByPhone(r.Context(), req.Phone); err == nil {
		writeError(w, http.StatusConflict, "Contact already exists")
		return
	} else if !errors.Is(err, entity.ErrContactNotFound) {
		writeError(w, http.StatusInternalServerError, "Failed to check contact")
		return
	}

	contact, err := entity.NewContact(leadID, req.Name, req.Phone, req.Email, req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ContactRepo.Create(r.Context(), contact); err != nil {
		if errors.Is(err, entity.ErrContactAlreadyExists) {
			writeError(w, http.StatusConflict, "Contact already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Contact added successfully",
		"contact": contact,
	})
}

func (h *ContactHandler) HandleListByLead(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseIDParam(w, r, "leadId")
	if !ok {
		return
	}

	contacts, err := h.ContactRepo.FindByLeadID(r.Context(), leadID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	contact, err := h.ContactRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch contact")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

type updateContactRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	contact, err := h.ContactRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch contact")
		return
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Role != nil {
		contact.Role = *req.Role
	}

	if err := h.ContactRepo.Update(r.Context(), contact); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.ContactRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrContactNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
