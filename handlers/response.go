package handlers

import (
	"encoding/json"
	"net/http"

	"taskerpro/utilities"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utilities.LogError(err, "Erro ao codificar resposta JSON")
	}
}

// HealthHandler responde à verificação de liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
