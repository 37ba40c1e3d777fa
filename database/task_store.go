package database

import (
	"context"
	"database/sql"
	"fmt"

	"taskerpro/models"
)

// PostgresTaskStore espelha o registro de tarefas na tabela task_items.
type PostgresTaskStore struct {
	db *sql.DB
}

func NewPostgresTaskStore(db *sql.DB) *PostgresTaskStore {
	return &PostgresTaskStore{db: db}
}

// LoadTasks retorna todas as tarefas ordenadas por ID (a ordem de inserção).
func (s *PostgresTaskStore) LoadTasks(ctx context.Context) ([]models.TaskItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, is_completed, user_id FROM task_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tarefas: %w", err)
	}
	defer rows.Close()

	var tasks []models.TaskItem
	for rows.Next() {
		var task models.TaskItem
		var description sql.NullString
		if err := rows.Scan(&task.ID, &task.Title, &description, &task.IsCompleted, &task.UserID); err != nil {
			return nil, fmt.Errorf("erro ao ler tarefa: %w", err)
		}
		if description.Valid {
			d := description.String
			task.Description = &d
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar tarefas: %w", err)
	}
	return tasks, nil
}

// SaveTask insere a tarefa ou sobrescreve a linha com o mesmo ID.
func (s *PostgresTaskStore) SaveTask(ctx context.Context, task models.TaskItem) error {
	var description sql.NullString
	if task.Description != nil {
		description = sql.NullString{String: *task.Description, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO task_items (id, title, description, is_completed, user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			is_completed = EXCLUDED.is_completed,
			user_id = EXCLUDED.user_id`,
		task.ID, task.Title, description, task.IsCompleted, task.UserID)
	if err != nil {
		return fmt.Errorf("erro ao salvar tarefa %d: %w", task.ID, err)
	}
	return nil
}

// SetTaskCompleted atualiza só o flag de conclusão.
func (s *PostgresTaskStore) SetTaskCompleted(ctx context.Context, taskID int, completed bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE task_items SET is_completed = $1 WHERE id = $2`, completed, taskID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar tarefa %d: %w", taskID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("tarefa %d não existe no banco", taskID)
	}
	return nil
}
