package controllers

import "net/http"

// HealthCheck отвечает на проверку состояния сервера.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
