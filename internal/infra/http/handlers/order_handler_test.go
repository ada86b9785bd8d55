package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/restro-crm/internal/entity"
	"github.com/xavierca1/restro-crm/internal/usecase"
)

func orderRouter(h *OrderHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/orders", h.HandleCreate)
	r.Get("/orders/filter", h.HandleFiltered)
	r.Get("/orders/patterns", h.HandleOrderingPatterns)
	r.Get("/orders/{id}", h.HandleGetByID)
	r.Get("/leads/{leadId}/orders", h.HandleListByLead)
	return r
}

func TestHandleCreateOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *entity.Order) bool {
		return o.LeadID == 3 && o.Amount == 120.5 && o.Status == entity.OrderStatusCompleted
	})).Return(nil)

	h := NewOrderHandler(mockRepo, nil)

	body, _ := json.Marshal(map[string]any{
		"leadId":            3,
		"amount":            120.5,
		"orderDate":         "2026-03-01",
		"productCategories": []string{"beverages"},
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order created successfully")
}

func TestHandleCreateOrderInvalidStatus(t *testing.T) {
	h := NewOrderHandler(new(MockOrderRepository), nil)

	body, _ := json.Marshal(map[string]any{
		"leadId": 3,
		"amount": 50,
		"status": "shipped",
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetOrderNotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("FindByID", mock.Anything, int64(42)).Return(nil, entity.ErrOrderNotFound)

	h := NewOrderHandler(mockRepo, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/42", nil)
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found.")
}

func TestHandleListByLeadEmptyIs404(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("FindByLeadID", mock.Anything, int64(3)).Return([]*entity.Order{}, nil)

	h := NewOrderHandler(mockRepo, nil)

	req := httptest.NewRequest(http.MethodGet, "/leads/3/orders", nil)
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No orders found for this lead.")
}

func TestHandleFilteredEmptyIs404(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	mockRepo.On("FindFiltered", mock.Anything, mock.Anything).Return([]*entity.Order{}, nil)

	h := NewOrderHandler(mockRepo, nil)

	req := httptest.NewRequest(http.MethodGet, "/orders/filter?productCategory=dairy", nil)
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No orders found matching the criteria.")
}

func TestHandleOrderingPatterns(t *testing.T) {
	patterns := []usecase.OrderingPattern{
		{
			LeadID: 1, RestaurantName: "Bistro Norte", Location: "Porto Alegre",
			Category: "beverages", TotalOrders: 2,
			TotalAmountSpent: "250.00", AverageDaysBetweenOrders: "7.50",
		},
	}

	mockAnalyzer := new(MockPatternAnalyzer)
	mockAnalyzer.On("OrderingPatterns", mock.Anything, mock.MatchedBy(func(in usecase.OrderingPatternsInput) bool {
		return in.LeadID != nil && *in.LeadID == 1 && in.Limit == 10 && in.Offset == 0
	})).Return(patterns, nil)

	h := NewOrderHandler(new(MockOrderRepository), mockAnalyzer)

	req := httptest.NewRequest(http.MethodGet, "/orders/patterns?leadId=1&limit=10", nil)
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                      `json:"success"`
		Data    []usecase.OrderingPattern `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)

	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "250.00", resp.Data[0].TotalAmountSpent)
	assert.Equal(t, "7.50", resp.Data[0].AverageDaysBetweenOrders)
}

func TestHandleOrderingPatternsWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mockAnalyzer := new(MockPatternAnalyzer)
	mockAnalyzer.On("OrderingPatterns", mock.Anything, mock.MatchedBy(func(in usecase.OrderingPatternsInput) bool {
		return in.StartDate != nil && in.StartDate.Equal(start) &&
			in.EndDate != nil && in.EndDate.Equal(end)
	})).Return([]usecase.OrderingPattern{{LeadID: 1, Category: "meat"}}, nil)

	h := NewOrderHandler(new(MockOrderRepository), mockAnalyzer)

	req := httptest.NewRequest(http.MethodGet, "/orders/patterns?startDate=2026-01-01&endDate=2026-02-01", nil)
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleOrderingPatternsEmptyIs404(t *testing.T) {
	mockAnalyzer := new(MockPatternAnalyzer)
	mockAnalyzer.On("OrderingPatterns", mock.Anything, mock.Anything).Return([]usecase.OrderingPattern{}, nil)

	h := NewOrderHandler(new(MockOrderRepository), mockAnalyzer)

	req := httptest.NewRequest(http.MethodGet, "/orders/patterns", nil)
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No ordering patterns found.")
}

func TestHandleOrderingPatternsBadLeadID(t *testing.T) {
	h := NewOrderHandler(new(MockOrderRepository), new(MockPatternAnalyzer))

	req := httptest.NewRequest(http.MethodGet, "/orders/patterns?leadId=abc", nil)
	rec := httptest.NewRecorder()
	orderRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "leadId must be a positive integer")
}
