package handler

import (
	"encoding/json"
	"net/http"

	"vigil/internal/alerts"
	"vigil/internal/alerts/service"
)

type alertsResponse struct {
	Alerts []alerts.AlertRecord `json:"alerts"`
	Count  int                  `json:"count"`
}

type statusesResponse struct {
	Statuses []service.EntityStatus `json:"statuses"`
}

type markReadRequest struct {
	UserID  string `json:"user_id"`
	AlertID string `json:"alert_id"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
