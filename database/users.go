package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskerpro/models"
	"taskerpro/utilities"
)

// ErrUserNotFound é retornado quando o UID ainda não foi sincronizado.
var ErrUserNotFound = errors.New("usuário não encontrado")

// UserStore acessa a tabela de identidade users.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// CheckOrCreateUser garante que o usuário do Firebase exista em users.
// created indica se a linha foi criada agora (primeiro acesso).
func (s *UserStore) CheckOrCreateUser(ctx context.Context, identity models.Identity) (user models.ApplicationUser, created bool, err error) {
	user, err = s.GetUser(ctx, identity.UID)
	switch {
	case err == nil:
		utilities.LogDebug("Usuário %s encontrado no PostgreSQL", identity.UID)
		return user, false, nil
	case !errors.Is(err, ErrUserNotFound):
		return models.ApplicationUser{}, false, err
	}

	utilities.LogInfo("Primeiro acesso para UID %s. Criando no PostgreSQL...", identity.UID)
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (firebase_uid, email, display_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (firebase_uid) DO UPDATE SET email = EXCLUDED.email
		RETURNING firebase_uid, email, display_name, created_at`,
		identity.UID, identity.Email, identity.DisplayName,
	).Scan(&user.FirebaseUID, &user.Email, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		return models.ApplicationUser{}, false, fmt.Errorf("erro ao inserir usuário no DB: %w", err)
	}
	return user, true, nil
}

// GetUser busca o usuário pelo Firebase UID.
func (s *UserStore) GetUser(ctx context.Context, uid string) (models.ApplicationUser, error) {
	var user models.ApplicationUser
	err := s.db.QueryRowContext(ctx,
		`SELECT firebase_uid, email, display_name, created_at FROM users WHERE firebase_uid = $1`, uid,
	).Scan(&user.FirebaseUID, &user.Email, &user.DisplayName, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ApplicationUser{}, ErrUserNotFound
	}
	if err != nil {
		return models.ApplicationUser{}, fmt.Errorf("erro ao buscar usuário no DB: %w", err)
	}
	return user, nil
}
