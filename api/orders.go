package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"food-orders/models"
	"food-orders/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderHandlers exposes the order lifecycle over HTTP.
type OrderHandlers struct {
	orders *services.Orders
}

func NewOrderHandlers(orders *services.Orders) *OrderHandlers {
	return &OrderHandlers{orders: orders}
}

type createOrderRequest struct {
	Items []services.CartItem `json:"items"`
}

func (h *OrderHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	order, err := h.orders.Create(r.Context(), principalFrom(r), req.Items)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	var f services.OrderFilter
	q := r.URL.Query()
	if s := q.Get("status"); s != "" {
		status := models.OrderStatus(s)
		if !status.Valid() {
			writeErrorMsg(w, http.StatusBadRequest, "unknown status "+strconv.Quote(s))
			return
		}
		f.Status = status
	}
	f.UserID = q.Get("userId")
	if s := q.Get("restaurantId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "restaurantId must be an integer")
			return
		}
		f.RestaurantID = id
	}
	orders, err := h.orders.List(r.Context(), principalFrom(r), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (h *OrderHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if !req.Status.Valid() {
		writeErrorMsg(w, http.StatusBadRequest, "status must be \"completed\" or \"cancelled\"")
		return
	}
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	order, err := h.orders.UpdateStatus(r.Context(), principalFrom(r), orderID, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	if err := h.orders.Delete(r.Context(), principalFrom(r), orderID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

// orderIDParam rejects ids that cannot be order ids before they reach
// the store, so a garbage path segment reads as not-found rather than a
// storage failure.
func orderIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		writeErrorMsg(w, http.StatusNotFound, "order "+id+" not found")
		return "", false
	}
	return id, true
}
