package usecase

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

// NotFoundError - запрошенный агрегат отсутствует в хранилище.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' was not found.", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func listNotFound(id uuid.UUID) error {
	return &NotFoundError{Resource: "List", ID: id}
}

func taskNotFound(id uuid.UUID) error {
	return &NotFoundError{Resource: "Task", ID: id}
}
