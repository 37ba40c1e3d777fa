package firebase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/auth"

	"taskerpro/models"
)

// AuthVerifier verifica ID tokens emitidos pelo Firebase Authentication.
type AuthVerifier struct {
	client *auth.Client
}

// VerifyUserToken valida o token e devolve a identidade do usuário.
func (v *AuthVerifier) VerifyUserToken(ctx context.Context, idToken string) (models.Identity, error) {
	if strings.TrimSpace(idToken) == "" {
		return models.Identity{}, errors.New("token não fornecido")
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return models.Identity{}, fmt.Errorf("erro ao verificar token: %w", err)
	}
	return IdentityFromToken(token), nil
}

// IdentityFromToken extrai UID, e-mail e nome das claims do token.
func IdentityFromToken(token *auth.Token) models.Identity {
	email, _ := token.Claims["email"].(string)
	displayName, _ := token.Claims["name"].(string)
	return models.Identity{
		UID:         token.UID,
		Email:       email,
		DisplayName: displayName,
	}
}
