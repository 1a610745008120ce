package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo"
	"github.com/KarpovAlexandrGo/todo-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const DefaultQueryTimeout = 5 * time.Second

// Backend хранит списки и задачи в PostgreSQL.
type Backend struct {
	db      *pgxpool.Pool
	logger  *logrus.Logger
	timeout time.Duration
}

func NewBackend(db *pgxpool.Pool, timeout time.Duration) *Backend {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &Backend{
		db:      db,
		logger:  logger.Log,
		timeout: timeout,
	}
}

func (b *Backend) FindList(ctx context.Context, id uuid.UUID) (*entity.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	query := `SELECT id, name FROM task_lists WHERE id = $1`

	var s entity.TaskListState
	err := b.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		b.logger.WithFields(logrus.Fields{
			"method":  "FindList",
			"list_id": id.String(),
		}).WithError(err).Error("Failed to get list")
		return nil, fmt.Errorf("failed to get list: %w", err)
	}

	return entity.RestoreTaskList(s), nil
}

func (b *Backend) FindTask(ctx context.Context, id uuid.UUID) (*entity.TodoTask, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	query := `
		SELECT id, list_id, title, description, is_completed, deadline
		FROM todo_tasks WHERE id = $1`

	var s entity.TodoTaskState
	err := b.db.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.ListID,
		&s.Title,
		&s.Description,
		&s.IsCompleted,
		&s.Deadline,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		b.logger.WithFields(logrus.Fields{
			"method":  "FindTask",
			"task_id": id.String(),
		}).WithError(err).Error("Failed to get task")
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return entity.RestoreTodoTask(s), nil
}

// Apply пишет изменения в одной транзакции: сначала списки, затем задачи, затем удаления.
func (b *Backend) Apply(ctx context.Context, cs *repo.ChangeSet) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	tx, err := b.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	for _, l := range cs.Lists {
		query := `
			INSERT INTO task_lists (id, name, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at`

		if _, err := tx.Exec(ctx, query, l.ID, l.Name, now); err != nil {
			b.logger.WithFields(logrus.Fields{
				"method":  "Apply",
				"list_id": l.ID.String(),
			}).WithError(err).Error("Failed to save list")
			return fmt.Errorf("failed to save list: %w", err)
		}
	}

	for _, t := range cs.Tasks {
		query := `
			INSERT INTO todo_tasks (id, list_id, title, description, is_completed, deadline, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
			ON CONFLICT (id) DO UPDATE SET
				list_id = EXCLUDED.list_id,
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				is_completed = EXCLUDED.is_completed,
				deadline = EXCLUDED.deadline,
				updated_at = EXCLUDED.updated_at`

		if _, err := tx.Exec(ctx, query,
			t.ID,
			t.ListID,
			t.Title,
			t.Description,
			t.IsCompleted,
			t.Deadline,
			now,
		); err != nil {
			b.logger.WithFields(logrus.Fields{
				"method":  "Apply",
				"task_id": t.ID.String(),
			}).WithError(err).Error("Failed to save task")
			return fmt.Errorf("failed to save task: %w", err)
		}
	}

	for _, id := range cs.DeletedTasks {
		if _, err := tx.Exec(ctx, `DELETE FROM todo_tasks WHERE id = $1`, id); err != nil {
			b.logger.WithFields(logrus.Fields{
				"method":  "Apply",
				"task_id": id.String(),
			}).WithError(err).Error("Failed to delete task")
			return fmt.Errorf("failed to delete task: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Connect создает пул и проверяет соединение.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Connected to database successfully")
	return pool, nil
}
