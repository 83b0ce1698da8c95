package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"food-orders/models"
	"food-orders/services"

	"github.com/go-chi/chi/v5"
)

// Catalog browsing and admin management. Writes require the admin role;
// the order engine itself never goes through these paths.

func listMenuItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var restaurantID int64
	if s := q.Get("restaurantId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "restaurantId must be an integer")
			return
		}
		restaurantID = id
	}
	items, err := services.ListMenuItems(r.Context(), q.Get("category"), restaurantID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func createMenuItem(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var in services.CreateMenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item, err := services.CreateMenuItem(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func updateMenuItem(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "menu item id must be an integer")
		return
	}
	var in services.UpdateMenuItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	item, err := services.UpdateMenuItem(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "menu item id must be an integer")
		return
	}
	if err := services.DeleteMenuItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "menu item deleted"})
}

func getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "restaurant id must be an integer")
		return
	}
	restaurant, err := services.GetRestaurant(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func listRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := services.ListRestaurants(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func createRestaurant(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var in services.CreateRestaurantInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	restaurant, err := services.CreateRestaurant(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, restaurant)
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if principalFrom(r).Role != models.RoleAdmin {
		writeErrorMsg(w, http.StatusForbidden, "admin role required")
		return false
	}
	return true
}
