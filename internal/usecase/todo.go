package usecase

import (
	"context"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/KarpovAlexandrGo/todo-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TodoUseCase interface {
	CreateList(ctx context.Context, name string) (*entity.TaskList, error)
	RenameList(ctx context.Context, listID uuid.UUID, name string) error
	CreateTask(ctx context.Context, listID uuid.UUID, title, description string) (*entity.TodoTask, error)
	UpdateTaskTitle(ctx context.Context, taskID uuid.UUID, title string) error
	UpdateTaskDescription(ctx context.Context, taskID uuid.UUID, description string) error
	SetTaskDeadline(ctx context.Context, taskID uuid.UUID, deadline *time.Time) error
	MarkTaskCompleted(ctx context.Context, taskID uuid.UUID) error
	MarkTaskInProgress(ctx context.Context, taskID uuid.UUID) error
	MoveTask(ctx context.Context, taskID, newListID uuid.UUID) error
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
}

// Factory создает use case на один запрос: репозитории держат состояние
// единицы работы и не разделяются между запросами.
type Factory func() TodoUseCase

type TodoUseCaseImpl struct {
	lists ListRepository
	tasks TaskRepository
	clock Clock
}

func NewTodoUseCase(lists ListRepository, tasks TaskRepository, clock Clock) *TodoUseCaseImpl {
	return &TodoUseCaseImpl{
		lists: lists,
		tasks: tasks,
		clock: clock,
	}
}

func (uc *TodoUseCaseImpl) CreateList(ctx context.Context, name string) (*entity.TaskList, error) {
	fields := logrus.Fields{"method": "CreateList"}

	list, err := entity.NewTaskList(name)
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("List validation failed")
		return nil, err
	}
	fields["list_id"] = list.ID().String()

	if err := uc.lists.Add(ctx, list); err != nil {
		return nil, err
	}
	if err := uc.lists.SaveChanges(ctx); err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("Failed to save list")
		return nil, err
	}

	logger.Log.WithFields(fields).Info("List created successfully")
	return list, nil
}

func (uc *TodoUseCaseImpl) RenameList(ctx context.Context, listID uuid.UUID, name string) error {
	fields := logrus.Fields{"method": "RenameList", "list_id": listID.String()}

	list, err := uc.getList(ctx, "RenameList", listID)
	if err != nil {
		return err
	}

	if err := list.Rename(name); err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("List validation failed")
		return err
	}

	if err := uc.lists.SaveChanges(ctx); err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("Failed to save list")
		return err
	}

	logger.Log.WithFields(fields).Info("List renamed successfully")
	return nil
}

func (uc *TodoUseCaseImpl) CreateTask(ctx context.Context, listID uuid.UUID, title, description string) (*entity.TodoTask, error) {
	fields := logrus.Fields{"method": "CreateTask", "list_id": listID.String()}

	if _, err := uc.getList(ctx, "CreateTask", listID); err != nil {
		return nil, err
	}

	task, err := entity.NewTodoTask(listID, title, description)
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("Task validation failed")
		return nil, err
	}
	fields["task_id"] = task.ID().String()

	if err := uc.tasks.Add(ctx, task); err != nil {
		return nil, err
	}
	if err := uc.tasks.SaveChanges(ctx); err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("Failed to save task")
		return nil, err
	}

	logger.Log.WithFields(fields).Info("Task created successfully")
	return task, nil
}

func (uc *TodoUseCaseImpl) UpdateTaskTitle(ctx context.Context, taskID uuid.UUID, title string) error {
	return uc.mutateTask(ctx, "UpdateTaskTitle", taskID, func(task *entity.TodoTask) error {
		return task.UpdateTitle(title)
	})
}

func (uc *TodoUseCaseImpl) UpdateTaskDescription(ctx context.Context, taskID uuid.UUID, description string) error {
	return uc.mutateTask(ctx, "UpdateTaskDescription", taskID, func(task *entity.TodoTask) error {
		return task.UpdateDescription(description)
	})
}

// SetTaskDeadline принимает дедлайн, равный текущему моменту; раньше - ошибка.
func (uc *TodoUseCaseImpl) SetTaskDeadline(ctx context.Context, taskID uuid.UUID, deadline *time.Time) error {
	return uc.mutateTask(ctx, "SetTaskDeadline", taskID, func(task *entity.TodoTask) error {
		if deadline != nil && deadline.Before(uc.clock.Now()) {
			return &entity.ValidationError{Field: "deadline", Message: "Deadline cannot be in the past."}
		}
		task.SetDeadline(deadline)
		return nil
	})
}

func (uc *TodoUseCaseImpl) MarkTaskCompleted(ctx context.Context, taskID uuid.UUID) error {
	return uc.mutateTask(ctx, "MarkTaskCompleted", taskID, func(task *entity.TodoTask) error {
		task.MarkCompleted()
		return nil
	})
}

func (uc *TodoUseCaseImpl) MarkTaskInProgress(ctx context.Context, taskID uuid.UUID) error {
	return uc.mutateTask(ctx, "MarkTaskInProgress", taskID, func(task *entity.TodoTask) error {
		task.MarkInProgress()
		return nil
	})
}

func (uc *TodoUseCaseImpl) MoveTask(ctx context.Context, taskID, newListID uuid.UUID) error {
	return uc.mutateTask(ctx, "MoveTask", taskID, func(task *entity.TodoTask) error {
		if _, err := uc.getList(ctx, "MoveTask", newListID); err != nil {
			return err
		}
		return task.MoveToList(newListID)
	})
}

// DeleteTask идемпотентен: отсутствующая задача - не ошибка.
func (uc *TodoUseCaseImpl) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	fields := logrus.Fields{"method": "DeleteTask", "task_id": taskID.String()}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("Failed to get task from repository")
		return err
	}
	if task == nil {
		logger.Log.WithFields(fields).Debug("Task already absent, nothing to delete")
		return nil
	}

	if err := uc.tasks.Delete(ctx, task); err != nil {
		return err
	}
	if err := uc.tasks.SaveChanges(ctx); err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("Failed to delete task")
		return err
	}

	logger.Log.WithFields(fields).Info("Task deleted successfully")
	return nil
}

// mutateTask: загрузка, изменение, одно сохранение.
func (uc *TodoUseCaseImpl) mutateTask(ctx context.Context, method string, taskID uuid.UUID, mutate func(*entity.TodoTask) error) error {
	fields := logrus.Fields{"method": method, "task_id": taskID.String()}

	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("Failed to get task from repository")
		return err
	}
	if task == nil {
		logger.Log.WithFields(fields).Warn("Task not found")
		return taskNotFound(taskID)
	}

	if err := mutate(task); err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("Task update rejected")
		return err
	}

	if err := uc.tasks.SaveChanges(ctx); err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("Failed to save task")
		return err
	}

	logger.Log.WithFields(fields).Info("Task updated successfully")
	return nil
}

func (uc *TodoUseCaseImpl) getList(ctx context.Context, method string, listID uuid.UUID) (*entity.TaskList, error) {
	fields := logrus.Fields{"method": method, "list_id": listID.String()}

	list, err := uc.lists.GetByID(ctx, listID)
	if err != nil {
		logger.Log.WithFields(fields).WithError(err).Error("Failed to get list from repository")
		return nil, err
	}
	if list == nil {
		logger.Log.WithFields(fields).Warn("List not found")
		return nil, listNotFound(listID)
	}
	return list, nil
}
