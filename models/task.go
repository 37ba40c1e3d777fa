package models

// TaskItem é uma tarefa de um usuário. O ID é atribuído pelo registro de
// tarefas na inserção; quem cria a tarefa nunca o preenche.
type TaskItem struct {
	ID          int     `json:"id" firestore:"id"`
	Title       string  `json:"title" firestore:"title"`
	Description *string `json:"description,omitempty" firestore:"description,omitempty"`
	IsCompleted bool    `json:"is_completed" firestore:"is_completed"`
	UserID      string  `json:"user_id" firestore:"user_id"` // Firebase UID do dono
}

// CreateTaskInput é o corpo aceito na criação; o dono vem do token.
type CreateTaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// RejectReason explica por que uma tarefa não entrou no registro.
type RejectReason string

const (
	RejectNone       RejectReason = ""
	RejectNilTask    RejectReason = "task_nil"
	RejectBlankOwner RejectReason = "owner_blank"
)

// AddResult é o resultado de TaskService.AddTask: ou Added com a tarefa
// armazenada (já com ID), ou rejeitada com Reason.
type AddResult struct {
	Task   TaskItem     `json:"task"`
	Added  bool         `json:"added"`
	Reason RejectReason `json:"reason,omitempty"`
}
