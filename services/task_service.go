package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"taskerpro/models"
	"taskerpro/utilities"
)

const storeTimeout = 5 * time.Second

// TaskStore é o armazenamento externo para onde o registro espelha as
// tarefas. Implementado por database.PostgresTaskStore e
// firebase.FirestoreTaskStore.
type TaskStore interface {
	LoadTasks(ctx context.Context) ([]models.TaskItem, error)
	SaveTask(ctx context.Context, task models.TaskItem) error
	SetTaskCompleted(ctx context.Context, taskID int, completed bool) error
}

// TaskService guarda todas as tarefas em memória, na ordem de inserção.
// É seguro para uso concorrente.
type TaskService struct {
	mu     sync.RWMutex
	tasks  []models.TaskItem
	nextID int
	store  TaskStore
}

// Option configura um TaskService.
type Option func(*TaskService)

// WithStore espelha inclusões e mudanças de conclusão em store.
func WithStore(store TaskStore) Option {
	return func(s *TaskService) {
		s.store = store
	}
}

// NewTaskService cria um registro vazio; o primeiro ID atribuído é 1.
func NewTaskService(opts ...Option) *TaskService {
	s := &TaskService{
		tasks:  []models.TaskItem{},
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore carrega as tarefas já salvas no store. Só pode ser chamado com o
// registro vazio, antes de atender requisições.
func (s *TaskService) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	loaded, err := s.store.LoadTasks(ctx)
	if err != nil {
		return fmt.Errorf("erro ao carregar tarefas do armazenamento: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.tasks) > 0 {
		return fmt.Errorf("registro já possui %d tarefas", len(s.tasks))
	}

	seen := make(map[int]bool, len(loaded))
	for _, t := range loaded {
		if t.ID <= 0 || seen[t.ID] || strings.TrimSpace(t.UserID) == "" {
			utilities.LogWarn("Ignorando tarefa inválida do armazenamento (ID: %d, dono: %q)", t.ID, t.UserID)
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, cloneTask(t))
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}

	utilities.LogInfo("Registro restaurado com %d tarefas (próximo ID: %d)", len(s.tasks), s.nextID)
	return nil
}

// GetTasks retorna uma cópia de todas as tarefas, na ordem de inserção.
func (s *TaskService) GetTasks() []models.TaskItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TaskItem, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// GetTasksForUser retorna as tarefas cujo dono é exatamente userID.
func (s *TaskService) GetTasksForUser(userID string) []models.TaskItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tasksForUserLocked(userID)
}

func (s *TaskService) tasksForUserLocked(userID string) []models.TaskItem {
	out := []models.TaskItem{}
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// FindTask busca uma tarefa pelo ID.
func (s *TaskService) FindTask(taskID int) (models.TaskItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOfLocked(taskID); i >= 0 {
		return cloneTask(s.tasks[i]), true
	}
	return models.TaskItem{}, false
}

// AddTask valida e insere task. Tarefa nil ou dono em branco são rejeitados
// sem alterar o registro. Em caso de sucesso o ID atribuído também é gravado
// em task.
func (s *TaskService) AddTask(task *models.TaskItem) models.AddResult {
	if task == nil {
		utilities.LogWarn("Tarefa nula, não foi adicionada")
		return models.AddResult{Reason: models.RejectNilTask}
	}
	if strings.TrimSpace(task.UserID) == "" {
		utilities.LogWarn("UserID vazio, tarefa %q não foi adicionada", task.Title)
		return models.AddResult{Task: cloneTask(*task), Reason: models.RejectBlankOwner}
	}

	s.mu.Lock()
	utilities.LogInfo("Adicionando tarefa: %s para o usuário: %s", task.Title, task.UserID)
	task.ID = s.nextID
	s.nextID++
	stored := cloneTask(*task)
	s.tasks = append(s.tasks, stored)
	ownerCount := len(s.tasksForUserLocked(task.UserID))
	s.mu.Unlock()

	utilities.LogInfo("Total de tarefas de %s: %d", task.UserID, ownerCount)

	s.mirror("salvar tarefa", stored.ID, func(ctx context.Context) error {
		return s.store.SaveTask(ctx, stored)
	})

	return models.AddResult{Task: cloneTask(stored), Added: true}
}

// CompleteTask marca a tarefa como concluída. Retorna false se o ID não existe.
func (s *TaskService) CompleteTask(taskID int) bool {
	return s.setCompleted(taskID, true)
}

// UncheckTask desmarca a conclusão da tarefa. Retorna false se o ID não existe.
func (s *TaskService) UncheckTask(taskID int) bool {
	return s.setCompleted(taskID, false)
}

func (s *TaskService) setCompleted(taskID int, completed bool) bool {
	s.mu.Lock()
	i := s.indexOfLocked(taskID)
	if i < 0 {
		s.mu.Unlock()
		utilities.LogDebug("Tarefa %d não encontrada, nada a alterar", taskID)
		return false
	}
	s.tasks[i].IsCompleted = completed
	s.mu.Unlock()

	utilities.LogDebug("Tarefa %d: concluída=%t", taskID, completed)

	s.mirror("atualizar conclusão da tarefa", taskID, func(ctx context.Context) error {
		return s.store.SetTaskCompleted(ctx, taskID, completed)
	})
	return true
}

// mirror replica uma alteração no store. Falhas só são logadas: o estado em
// memória é a fonte da verdade.
func (s *TaskService) mirror(action string, taskID int, fn func(ctx context.Context) error) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		utilities.LogError(err, fmt.Sprintf("Erro ao %s %d no armazenamento", action, taskID))
	}
}

func (s *TaskService) indexOfLocked(taskID int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func cloneTask(t models.TaskItem) models.TaskItem {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return t
}
