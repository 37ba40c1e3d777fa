package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"taskerpro/database"
	"taskerpro/utilities"
)

type finalizeLoginInput struct {
	IDToken string `json:"idToken"`
}

type finalizeLoginResponse struct {
	Message     string `json:"message"`
	FirebaseUID string `json:"firebaseUid"`
	Created     bool   `json:"created"`
}

// FinalizeFirebaseLoginHandler verifica um ID Token do Firebase e sincroniza
// o usuário com a tabela users.
func FinalizeFirebaseLoginHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogInfo("Recebida requisição para finalizar login com ID Token do Firebase.")

	if users == nil {
		http.Error(w, "User store not configured", http.StatusServiceUnavailable)
		return
	}

	var input finalizeLoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "Erro ao decodificar corpo da requisição para finalizar login Firebase")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(input.IDToken) == "" {
		http.Error(w, "idToken is required", http.StatusBadRequest)
		return
	}

	identity, err := verifier.VerifyUserToken(r.Context(), input.IDToken)
	if err != nil {
		utilities.LogError(err, "Falha ao verificar ID Token do Firebase")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	user, created, err := users.CheckOrCreateUser(r.Context(), identity)
	if err != nil {
		utilities.LogError(err, "Erro ao sincronizar usuário com banco de dados local")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	utilities.LogInfo("Usuário (Firebase UID: %s) sincronizado com sucesso.", user.FirebaseUID)

	writeJSON(w, http.StatusOK, finalizeLoginResponse{
		Message:     "Login finalizado e usuário sincronizado com sucesso.",
		FirebaseUID: user.FirebaseUID,
		Created:     created,
	})
}

// UserHandler retorna o usuário autenticado.
func UserHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := userUIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if users == nil {
		http.Error(w, "User store not configured", http.StatusServiceUnavailable)
		return
	}

	user, err := users.GetUser(r.Context(), uid)
	if errors.Is(err, database.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utilities.LogError(err, "Erro ao buscar usuário")
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
