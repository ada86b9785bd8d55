package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/xavierca1/restro-crm/internal/entity"
	"github.com/xavierca1/restro-crm/internal/usecase"
)

// PatternAnalyzer mines ordering patterns over a date window.
type PatternAnalyzer interface {
	OrderingPatterns(ctx context.Context, input usecase.OrderingPatternsInput) ([]usecase.OrderingPattern, error)
}

type OrderHandler struct {
	OrderRepo entity.OrderRepositoryInterface
	Analyzer  PatternAnalyzer
}

func NewOrderHandler(orderRepo entity.OrderRepositoryInterface, analyzer PatternAnalyzer) *OrderHandler {
	return &OrderHandler{
		OrderRepo: orderRepo,
		Analyzer:  analyzer,
	}
}

type createOrderRequest struct {
	LeadID            int64    `json:"leadId"`
	Amount            float64  `json:"amount"`
	OrderDate         string   `json:"orderDate"`
	Status            string   `json:"status"`
	ProductCategories []string `json:"productCategories"`
	Notes             string   `json:"notes"`
}

func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var orderDate time.Time
	if req.OrderDate != "" {
		parsed, ok := parseDate(req.OrderDate)
		if !ok {
			writeError(w, http.StatusBadRequest, "orderDate must be a valid date")
			return
		}
		orderDate = parsed
	}

	order, err := entity.NewOrder(req.LeadID, req.Amount, orderDate, req.Status, req.ProductCategories, req.Notes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.OrderRepo.Create(r.Context(), order); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (h *OrderHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.OrderRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) HandleListByLead(w http.ResponseWriter, r *http.Request) {
	leadID, ok := parseIDParam(w, r, "leadId")
	if !ok {
		return
	}

	orders, err := h.OrderRepo.FindByLeadID(r.Context(), leadID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	if len(orders) == 0 {
		writeError(w, http.StatusNotFound, "No orders found for this lead.")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

type updateOrderRequest struct {
	Amount            *float64  `json:"amount"`
	OrderDate         *string   `json:"orderDate"`
	Status            *string   `json:"status"`
	ProductCategories *[]string `json:"productCategories"`
	Notes             *string   `json:"notes"`
}

func (h *OrderHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	order, err := h.OrderRepo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	if req.Amount != nil {
		order.Amount = *req.Amount
	}
	if req.OrderDate != nil {
		parsed, ok := parseDate(*req.OrderDate)
		if !ok {
			writeError(w, http.StatusBadRequest, "orderDate must be a valid date")
			return
		}
		order.OrderDate = parsed
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.ProductCategories != nil {
		order.ProductCategories = *req.ProductCategories
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	if err := order.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.OrderRepo.Update(r.Context(), order); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Order updated successfully",
		"order":   order,
	})
}

func (h *OrderHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.OrderRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, entity.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found.")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}

func (h *OrderHandler) HandleFiltered(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := entity.OrderFilters{
		ProductCategory: q.Get("productCategory"),
	}

	if raw := q.Get("startDate"); raw != "" {
		parsed, ok := parseDate(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "startDate must be a valid date")
			return
		}
		filters.StartDate = &parsed
	}
	if raw := q.Get("endDate"); raw != "" {
		parsed, ok := parseDate(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "endDate must be a valid date")
			return
		}
		filters.EndDate = &parsed
	}

	orders, err := h.OrderRepo.FindFiltered(r.Context(), filters)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch filtered orders")
		return
	}

	if len(orders) == 0 {
		writeError(w, http.StatusNotFound, "No orders found matching the criteria.")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) HandleOrderingPatterns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := usecase.OrderingPatternsInput{}

	if raw := q.Get("leadId"); raw != "" {
		leadID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || leadID <= 0 {
			writeError(w, http.StatusBadRequest, "leadId must be a positive integer")
			return
		}
		input.LeadID = &leadID
	}
	if raw := q.Get("startDate"); raw != "" {
		parsed, ok := parseDate(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "startDate must be a valid date")
			return
		}
		input.StartDate = &parsed
	}
	if raw := q.Get("endDate"); raw != "" {
		parsed, ok := parseDate(raw)
		if !ok {
			writeError(w, http.StatusBadRequest, "endDate must be a valid date")
			return
		}
		input.EndDate = &parsed
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		input.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
			return
		}
		input.Offset = offset
	}

	patterns, err := h.Analyzer.OrderingPatterns(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(patterns) == 0 {
		writeError(w, http.StatusNotFound, "No ordering patterns found.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    patterns,
	})
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
