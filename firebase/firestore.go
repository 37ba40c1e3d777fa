package firebase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"taskerpro/models"
	"taskerpro/utilities"
)

const tasksCollectionName = "task_items"

// FirestoreTaskStore espelha o registro de tarefas em uma coleção do
// Firestore. O ID numérico da tarefa é o ID do documento.
type FirestoreTaskStore struct {
	client *firestore.Client
}

func NewFirestoreTaskStore(client *firestore.Client) *FirestoreTaskStore {
	return &FirestoreTaskStore{client: client}
}

func (s *FirestoreTaskStore) doc(taskID int) *firestore.DocumentRef {
	return s.client.Collection(tasksCollectionName).Doc(strconv.Itoa(taskID))
}

// LoadTasks lê todos os documentos da coleção em ordem de ID.
func (s *FirestoreTaskStore) LoadTasks(ctx context.Context) ([]models.TaskItem, error) {
	iter := s.client.Collection(tasksCollectionName).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var tasks []models.TaskItem
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("erro ao iterar tarefas do Firestore: %w", err)
		}

		var task models.TaskItem
		if err := doc.DataTo(&task); err != nil {
			// Um documento malformado não impede o carregamento dos demais.
			utilities.LogWarn("Erro ao converter tarefa do Firestore (Doc ID: %s): %v", doc.Ref.ID, err)
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// SaveTask grava o documento inteiro da tarefa.
func (s *FirestoreTaskStore) SaveTask(ctx context.Context, task models.TaskItem) error {
	if _, err := s.doc(task.ID).Set(ctx, task); err != nil {
		return fmt.Errorf("erro ao salvar tarefa %d no Firestore: %w", task.ID, err)
	}
	return nil
}

// SetTaskCompleted atualiza só o campo is_completed; falha se o documento não existe.
func (s *FirestoreTaskStore) SetTaskCompleted(ctx context.Context, taskID int, completed bool) error {
	_, err := s.doc(taskID).Update(ctx, []firestore.Update{
		{Path: "is_completed", Value: completed},
	})
	if err != nil {
		return fmt.Errorf("erro ao atualizar tarefa %d no Firestore: %w", taskID, err)
	}
	return nil
}
