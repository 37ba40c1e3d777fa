package models

import "time"

// ApplicationUser é a linha da tabela de identidade users, sincronizada a
// partir do Firebase no login.
type ApplicationUser struct {
	FirebaseUID string    `json:"firebase_uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Identity é o que sobra de um ID token verificado.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}
