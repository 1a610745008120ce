package entity

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxListNameLength = 80

// TaskList - список задач. Поля меняются только через методы с валидацией.
type TaskList struct {
	id   uuid.UUID
	name string
}

// TaskListState - сериализуемое представление списка.
type TaskListState struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewTaskList создает список с новым идентификатором.
func NewTaskList(name string) (*TaskList, error) {
	normalized, err := normalizeListName(name)
	if err != nil {
		return nil, err
	}
	return &TaskList{id: uuid.New(), name: normalized}, nil
}

// RestoreTaskList восстанавливает список из хранилища без повторной валидации.
func RestoreTaskList(s TaskListState) *TaskList {
	return &TaskList{id: s.ID, name: s.Name}
}

func (l *TaskList) ID() uuid.UUID { return l.id }
func (l *TaskList) Name() string  { return l.name }

// Rename меняет имя списка.
func (l *TaskList) Rename(name string) error {
	normalized, err := normalizeListName(name)
	if err != nil {
		return err
	}
	l.name = normalized
	return nil
}

func (l *TaskList) State() TaskListState {
	return TaskListState{ID: l.id, Name: l.name}
}

func normalizeListName(name string) (string, error) {
	normalized := strings.TrimSpace(name)

	if normalized == "" {
		return "", newValidationError("name", "List name cannot be empty.")
	}
	if utf8.RuneCountInString(normalized) > MaxListNameLength {
		return "", newValidationError("name", "List name cannot exceed 80 characters.")
	}
	return normalized, nil
}
