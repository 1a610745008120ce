package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo"
	"github.com/KarpovAlexandrGo/todo-service/pkg/logger"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	DefaultQueryTimeout = 5 * time.Second

	timeLayout = time.RFC3339Nano
)

// ErrLocked - базу уже открыл другой процесс.
var ErrLocked = errors.New("database is locked by another process")

// Backend хранит списки и задачи в файле SQLite. Писатель один:
// внутри процесса соединение одно, между процессами - файловая блокировка.
type Backend struct {
	db      *sql.DB
	lock    *flock.Flock
	logger  *logrus.Logger
	timeout time.Duration
}

// Open открывает базу, захватывает блокировку и накатывает миграции.
func Open(ctx context.Context, path string, timeout time.Duration) (*Backend, error) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", dataSourceName(path))
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		lock.Unlock()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	b := &Backend{
		db:      db,
		lock:    lock,
		logger:  logger.Log,
		timeout: timeout,
	}

	if err := b.migrate(ctx); err != nil {
		b.Close()
		return nil, err
	}

	b.logger.WithField("path", path).Info("Opened SQLite database")
	return b, nil
}

func (b *Backend) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, b.db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		b.logger.WithFields(logrus.Fields{
			"version":  r.Source.Version,
			"duration": r.Duration.String(),
		}).Info("Migration applied")
	}
	return nil
}

func (b *Backend) Close() error {
	err := b.db.Close()
	if uerr := b.lock.Unlock(); uerr != nil && err == nil {
		err = uerr
	}
	return err
}

func (b *Backend) FindList(ctx context.Context, id uuid.UUID) (*entity.TaskList, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	var s entity.TaskListState
	err := b.db.QueryRowContext(ctx, `SELECT id, name FROM task_lists WHERE id = ?`, id.String()).
		Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
		FROM todo_tasks WHERE id = ?`

	var (
		s        entity.TodoTaskState
		deadline sql.NullString
	)
	err := b.db.QueryRowContext(ctx, query, id.String()).Scan(
		&s.ID,
		&s.ListID,
		&s.Title,
		&s.Description,
		&s.IsCompleted,
		&deadline,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		b.logger.WithFields(logrus.Fields{
			"method":  "FindTask",
			"task_id": id.String(),
		}).WithError(err).Error("Failed to get task")
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if deadline.Valid {
		d, err := time.Parse(timeLayout, deadline.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse deadline: %w", err)
		}
		s.Deadline = &d
	}

	return entity.RestoreTodoTask(s), nil
}

// Apply пишет изменения в одной транзакции: сначала списки, затем задачи, затем удаления.
func (b *Backend) Apply(ctx context.Context, cs *repo.ChangeSet) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now())

	for _, l := range cs.Lists {
		query := `
			INSERT INTO task_lists (id, name, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`

		if _, err := tx.ExecContext(ctx, query, l.ID.String(), l.Name, now, now); err != nil {
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
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				list_id = excluded.list_id,
				title = excluded.title,
				description = excluded.description,
				is_completed = excluded.is_completed,
				deadline = excluded.deadline,
				updated_at = excluded.updated_at`

		var deadline sql.NullString
		if t.Deadline != nil {
			deadline = sql.NullString{String: formatTime(*t.Deadline), Valid: true}
		}

		if _, err := tx.ExecContext(ctx, query,
			t.ID.String(),
			t.ListID.String(),
			t.Title,
			t.Description,
			t.IsCompleted,
			deadline,
			now,
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
		if _, err := tx.ExecContext(ctx, `DELETE FROM todo_tasks WHERE id = ?`, id.String()); err != nil {
			b.logger.WithFields(logrus.Fields{
				"method":  "Apply",
				"task_id": id.String(),
			}).WithError(err).Error("Failed to delete task")
			return fmt.Errorf("failed to delete task: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// dataSourceName экранирует путь: '?', '#' и '%' в имени файла не должны
// попасть в параметры URI.
func dataSourceName(path string) string {
	escaped := (&url.URL{Path: filepath.ToSlash(path)}).EscapedPath()
	return "file:" + escaped + "?" + pragmas
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
