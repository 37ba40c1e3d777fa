package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"taskerpro/models"
	"taskerpro/utilities"

	"github.com/gorilla/mux"
)

type rejectionResponse struct {
	Error  string              `json:"error"`
	Reason models.RejectReason `json:"reason"`
}

// CreateTaskHandler cria uma tarefa para o usuário autenticado.
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	utilities.LogDebug("Iniciando criação de nova tarefa")

	uid, ok := userUIDFromContext(r.Context())
	if !ok {
		utilities.LogError(fmt.Errorf("UID não encontrado no contexto"), "CreateTaskHandler: Falha na autenticação")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input models.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utilities.LogError(err, "CreateTaskHandler: Erro ao decodificar JSON da tarefa")
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	task := &models.TaskItem{
		Title:       input.Title,
		Description: input.Description,
		UserID:      uid,
	}

	result := taskService.AddTask(task)
	if !result.Added {
		writeJSON(w, http.StatusUnprocessableEntity, rejectionResponse{
			Error:  "Task rejected",
			Reason: result.Reason,
		})
		return
	}

	utilities.LogInfo("Tarefa criada com sucesso: %s (ID: %d)", result.Task.Title, result.Task.ID)
	writeJSON(w, http.StatusCreated, result.Task)
}

// ListTasksHandler lista as tarefas do usuário autenticado.
func ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := userUIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tasks := taskService.GetTasksForUser(uid)
	utilities.LogDebug("Tarefas listadas para %s - total: %d", uid, len(tasks))
	writeJSON(w, http.StatusOK, tasks)
}

// ListAllTasksHandler lista todas as tarefas do registro.
func ListAllTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks := taskService.GetTasks()
	utilities.LogDebug("Todas as tarefas listadas - total: %d", len(tasks))
	writeJSON(w, http.StatusOK, tasks)
}

// CompleteTaskHandler marca uma tarefa do usuário como concluída.
func CompleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	setTaskCompletion(w, r, true)
}

// UncheckTaskHandler desmarca a conclusão de uma tarefa do usuário.
func UncheckTaskHandler(w http.ResponseWriter, r *http.Request) {
	setTaskCompletion(w, r, false)
}

func setTaskCompletion(w http.ResponseWriter, r *http.Request, completed bool) {
	uid, ok := userUIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	taskID, err := strconv.Atoi(mux.Vars(r)["task_id"])
	if err != nil {
		utilities.LogError(err, "ID de tarefa inválido")
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	// Tarefas de outros usuários respondem como inexistentes.
	task, found := taskService.FindTask(taskID)
	if !found || task.UserID != uid {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}

	if completed {
		found = taskService.CompleteTask(taskID)
	} else {
		found = taskService.UncheckTask(taskID)
	}
	if !found {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}

	utilities.LogInfo("Tarefa %d atualizada: concluída=%t", taskID, completed)
	w.WriteHeader(http.StatusNoContent)
}
