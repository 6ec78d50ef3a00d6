package handlers

import (
	"context"
	"net/http"
	"time"

	"alumni-office/internal/api/dto"
	"alumni-office/internal/api/utils"
)

func NewHealthHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			utils.WriteMessage(w, http.StatusServiceUnavailable, "Database connection failed", "DB_UNAVAILABLE")
			return
		}

		utils.WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
	}
}
