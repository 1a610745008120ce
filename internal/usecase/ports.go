package usecase

import (
	"context"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/google/uuid"
)

// ListRepository - хранилище списков. GetByID возвращает nil, nil, если списка нет.
type ListRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaskList, error)
	Add(ctx context.Context, list *entity.TaskList) error
	SaveChanges(ctx context.Context) error
}

// TaskRepository - хранилище задач. GetByID возвращает nil, nil, если задачи нет.
type TaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TodoTask, error)
	Add(ctx context.Context, task *entity.TodoTask) error
	Delete(ctx context.Context, task *entity.TodoTask) error
	SaveChanges(ctx context.Context) error
}

type Clock interface {
	Now() time.Time
}
