package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"taskerpro/models"
	"taskerpro/services"
	"taskerpro/utilities"
)

// TokenVerifier verifica o ID token do provedor de identidade.
type TokenVerifier interface {
	VerifyUserToken(ctx context.Context, idToken string) (models.Identity, error)
}

// UserRepository acessa as linhas de identidade sincronizadas localmente.
type UserRepository interface {
	CheckOrCreateUser(ctx context.Context, identity models.Identity) (models.ApplicationUser, bool, error)
	GetUser(ctx context.Context, uid string) (models.ApplicationUser, error)
}

type contextKey string

const userUIDKey contextKey = "userUID"

var (
	taskService *services.TaskService
	verifier    TokenVerifier
	users       UserRepository
)

// InitTaskService define o registro de tarefas usado pelos handlers.
func InitTaskService(s *services.TaskService) {
	utilities.LogDebug("Inicializando registro de tarefas dos handlers")
	taskService = s
}

// InitAuth define o verificador de tokens usado pelo AuthMiddleware.
func InitAuth(v TokenVerifier) {
	utilities.LogDebug("Inicializando verificador de tokens")
	verifier = v
}

// InitUsers define o repositório de usuários. nil desliga as rotas de usuário.
func InitUsers(repo UserRepository) {
	utilities.LogDebug("Inicializando repositório de usuários")
	users = repo
}

// bearerToken extrai o token do header Authorization.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("header de autorização ausente")
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", errors.New("token não fornecido")
	}
	return token, nil
}

// AuthMiddleware verifica o token e coloca o UID no contexto da requisição.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r)
		if err != nil {
			utilities.LogError(err, "Autenticação falhou")
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		identity, err := verifier.VerifyUserToken(r.Context(), token)
		if err != nil {
			utilities.LogError(err, "Token inválido")
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userUIDKey, identity.UID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// userUIDFromContext retorna o UID colocado pelo AuthMiddleware.
func userUIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userUIDKey).(string)
	return uid, ok && uid != ""
}
