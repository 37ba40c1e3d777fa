package database

import (
	"context"
	"database/sql"
	"fmt"

	"taskerpro/utilities"
)

// schema cria a tabela de identidade (users) e a de tarefas. task_items.user_id
// guarda o Firebase UID e não tem chave estrangeira: a tarefa pode ser
// espelhada antes do primeiro login do dono ser sincronizado.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           SERIAL PRIMARY KEY,
		firebase_uid TEXT NOT NULL UNIQUE,
		email        TEXT NOT NULL DEFAULT '',
		display_name TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS task_items (
		id           INTEGER PRIMARY KEY,
		title        TEXT NOT NULL DEFAULT '',
		description  TEXT,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		user_id      TEXT NOT NULL CHECK (btrim(user_id) <> '')
	)`,
	`CREATE INDEX IF NOT EXISTS task_items_user_id_idx ON task_items (user_id)`,
}

// EnsureSchema aplica o schema; é idempotente.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao aplicar schema: %w", err)
		}
	}
	utilities.LogDebug("Schema do banco verificado (%d comandos)", len(schema))
	return nil
}
