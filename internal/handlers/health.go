package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthHandler answers the hosting platform's liveness probe.
type HealthHandler struct{}

type healthResponse struct {
	Status string `json:"status"`
}

func (HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(healthResponse{Status: "ok"}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
