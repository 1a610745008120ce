package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTaskTitleLength       = 200
	MinTaskDescriptionLength = 10
	MaxTaskDescriptionLength = 2000
)

// TodoTask - задача внутри списка. Связь со списком только по идентификатору.
//
// Сущность не знает о текущем времени: проверка "дедлайн не в прошлом"
// выполняется в usecase через Clock.
type TodoTask struct {
	id          uuid.UUID
	listID      uuid.UUID
	title       string
	description string
	isCompleted bool
	deadline    *time.Time
}

// TodoTaskState - сериализуемое представление задачи.
type TodoTaskState struct {
	ID          uuid.UUID  `json:"id"`
	ListID      uuid.UUID  `json:"listId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	Deadline    *time.Time `json:"deadline"`
}

// NewTodoTask создает незавершенную задачу без дедлайна.
func NewTodoTask(listID uuid.UUID, title, description string) (*TodoTask, error) {
	if listID == uuid.Nil {
		return nil, newValidationError("listId", "ListId is required.")
	}

	normalizedTitle, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	normalizedDescription, err := normalizeDescription(description)
	if err != nil {
		return nil, err
	}

	return &TodoTask{
		id:          uuid.New(),
		listID:      listID,
		title:       normalizedTitle,
		description: normalizedDescription,
	}, nil
}

// RestoreTodoTask восстанавливает задачу из хранилища без повторной валидации.
func RestoreTodoTask(s TodoTaskState) *TodoTask {
	return &TodoTask{
		id:          s.ID,
		listID:      s.ListID,
		title:       s.Title,
		description: s.Description,
		isCompleted: s.IsCompleted,
		deadline:    copyTime(s.Deadline),
	}
}

func (t *TodoTask) ID() uuid.UUID       { return t.id }
func (t *TodoTask) ListID() uuid.UUID   { return t.listID }
func (t *TodoTask) Title() string       { return t.title }
func (t *TodoTask) Description() string { return t.description }
func (t *TodoTask) IsCompleted() bool   { return t.isCompleted }
func (t *TodoTask) Deadline() *time.Time {
	return copyTime(t.deadline)
}

func (t *TodoTask) UpdateTitle(title string) error {
	normalized, err := normalizeTitle(title)
	if err != nil {
		return err
	}
	t.title = normalized
	return nil
}

func (t *TodoTask) UpdateDescription(description string) error {
	normalized, err := normalizeDescription(description)
	if err != nil {
		return err
	}
	t.description = normalized
	return nil
}

// MoveToList переносит задачу. Существование списка проверяет вызывающий код.
func (t *TodoTask) MoveToList(listID uuid.UUID) error {
	if listID == uuid.Nil {
		return newValidationError("listId", "ListId is required.")
	}
	t.listID = listID
	return nil
}

func (t *TodoTask) MarkCompleted() {
	t.isCompleted = true
}

// MarkInProgress снимает отметку о завершении. Третьего состояния нет.
func (t *TodoTask) MarkInProgress() {
	t.isCompleted = false
}

// SetDeadline принимает любое значение, включая nil и время в прошлом.
func (t *TodoTask) SetDeadline(deadline *time.Time) {
	t.deadline = copyTime(deadline)
}

func (t *TodoTask) State() TodoTaskState {
	return TodoTaskState{
		ID:          t.id,
		ListID:      t.listID,
		Title:       t.title,
		Description: t.description,
		IsCompleted: t.isCompleted,
		Deadline:    copyTime(t.deadline),
	}
}

func normalizeTitle(title string) (string, error) {
	normalized := strings.TrimSpace(title)

	if normalized == "" {
		return "", newValidationError("title", "Task title cannot be empty.")
	}
	if utf8.RuneCountInString(normalized) > MaxTaskTitleLength {
		return "", newValidationError("title", "Task title cannot exceed 200 characters.")
	}
	return normalized, nil
}

func normalizeDescription(description string) (string, error) {
	normalized := strings.TrimSpace(description)
	n := utf8.RuneCountInString(normalized)

	if n < MinTaskDescriptionLength {
		return "", newValidationError("description", "Task description must be at least 10 characters.")
	}
	if n > MaxTaskDescriptionLength {
		return "", newValidationError("description", "Task description cannot exceed 2000 characters.")
	}
	return normalized, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
