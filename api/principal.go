package api

import (
	"context"
	"net/http"
	"strconv"

	"food-orders/models"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// RequirePrincipal reads the authenticated principal that the fronting
// identity service attaches to every request. The engine trusts these
// headers; unauthenticated traffic never reaches it in production, and
// a missing or malformed principal is rejected here.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-Id")
		if _, err := uuid.Parse(userID); err != nil {
			writeErrorMsg(w, http.StatusUnauthorized, "missing or invalid X-User-Id")
			return
		}
		role := models.Role(r.Header.Get("X-User-Role"))
		if !role.Valid() {
			writeErrorMsg(w, http.StatusUnauthorized, "missing or invalid X-User-Role")
			return
		}
		p := models.Principal{UserID: userID, Role: role}
		if role == models.RoleManager {
			restaurantID, err := strconv.ParseInt(r.Header.Get("X-Restaurant-Id"), 10, 64)
			if err != nil || restaurantID <= 0 {
				writeErrorMsg(w, http.StatusUnauthorized, "manager principal requires X-Restaurant-Id")
				return
			}
			p.RestaurantID = restaurantID
		}
		ctx := context.WithValue(r.Context(), principalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func principalFrom(r *http.Request) models.Principal {
	p, _ := r.Context().Value(principalKey).(models.Principal)
	return p
}
