package repo

import (
	"context"
	"errors"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/google/uuid"
)

// ErrNotFound возвращается Backend, если записи нет.
var ErrNotFound = errors.New("record not found")

// Backend - движок хранения за сессией. Должен быть безопасен для
// конкурентного использования: один Backend обслуживает все запросы.
type Backend interface {
	FindList(ctx context.Context, id uuid.UUID) (*entity.TaskList, error)
	FindTask(ctx context.Context, id uuid.UUID) (*entity.TodoTask, error)
	// Apply записывает набор изменений атомарно.
	Apply(ctx context.Context, cs *ChangeSet) error
}

// ChangeSet - накопленные за сессию изменения.
type ChangeSet struct {
	Lists        []entity.TaskListState
	Tasks        []entity.TodoTaskState
	DeletedTasks []uuid.UUID
}

func (cs *ChangeSet) Empty() bool {
	return len(cs.Lists) == 0 && len(cs.Tasks) == 0 && len(cs.DeletedTasks) == 0
}

// Session - единица работы одного запроса. Списки и задачи, полученные
// или добавленные через сессию, отслеживаются; SaveChanges пишет их
// текущее состояние одним вызовом Backend.Apply.
//
// Session не предназначена для конкурентного использования.
type Session struct {
	backend Backend

	lists   map[uuid.UUID]*entity.TaskList
	tasks   map[uuid.UUID]*entity.TodoTask
	deleted map[uuid.UUID]struct{}
	order   []uuid.UUID

	// состояние на момент загрузки; у добавленных сущностей его нет
	loadedLists map[uuid.UUID]entity.TaskListState
	loadedTasks map[uuid.UUID]entity.TodoTaskState
}

func NewSession(backend Backend) *Session {
	s := &Session{backend: backend}
	s.reset()
	return s
}

func (s *Session) Lists() *ListRepository {
	return &ListRepository{session: s}
}

func (s *Session) Tasks() *TaskRepository {
	return &TaskRepository{session: s}
}

// SaveChanges без изменений не обращается к Backend.
func (s *Session) SaveChanges(ctx context.Context) error {
	cs := s.changeSet()
	if cs.Empty() {
		return nil
	}
	if err := s.backend.Apply(ctx, cs); err != nil {
		return err
	}
	s.reset()
	return nil
}

// changeSet собирает новые и измененные сущности в порядке отслеживания.
func (s *Session) changeSet() *ChangeSet {
	cs := &ChangeSet{}
	for _, id := range s.order {
		if l, ok := s.lists[id]; ok {
			state := l.State()
			if orig, loaded := s.loadedLists[id]; !loaded || orig != state {
				cs.Lists = append(cs.Lists, state)
			}
			continue
		}
		if _, gone := s.deleted[id]; gone {
			cs.DeletedTasks = append(cs.DeletedTasks, id)
			continue
		}
		if t, ok := s.tasks[id]; ok {
			state := t.State()
			if orig, loaded := s.loadedTasks[id]; !loaded || !sameTask(orig, state) {
				cs.Tasks = append(cs.Tasks, state)
			}
		}
	}
	return cs
}

func sameTask(a, b entity.TodoTaskState) bool {
	if a.ID != b.ID || a.ListID != b.ListID || a.Title != b.Title ||
		a.Description != b.Description || a.IsCompleted != b.IsCompleted {
		return false
	}
	if a.Deadline == nil || b.Deadline == nil {
		return a.Deadline == nil && b.Deadline == nil
	}
	return a.Deadline.Equal(*b.Deadline)
}

func (s *Session) reset() {
	s.lists = make(map[uuid.UUID]*entity.TaskList)
	s.tasks = make(map[uuid.UUID]*entity.TodoTask)
	s.deleted = make(map[uuid.UUID]struct{})
	s.order = nil
	s.loadedLists = make(map[uuid.UUID]entity.TaskListState)
	s.loadedTasks = make(map[uuid.UUID]entity.TodoTaskState)
}

func (s *Session) trackList(l *entity.TaskList) *entity.TaskList {
	if tracked, ok := s.lists[l.ID()]; ok {
		return tracked
	}
	s.lists[l.ID()] = l
	s.order = append(s.order, l.ID())
	return l
}

func (s *Session) trackTask(t *entity.TodoTask) *entity.TodoTask {
	if tracked, ok := s.tasks[t.ID()]; ok {
		return tracked
	}
	s.tasks[t.ID()] = t
	s.order = append(s.order, t.ID())
	return t
}

// ListRepository реализует usecase.ListRepository поверх сессии.
type ListRepository struct {
	session *Session
}

// GetByID возвращает nil, nil, если списка нет. Повторная загрузка в той же
// сессии отдает тот же экземпляр.
func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaskList, error) {
	if l, ok := r.session.lists[id]; ok {
		return l, nil
	}

	l, err := r.session.backend.FindList(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.session.loadedLists[id] = l.State()
	return r.session.trackList(l), nil
}

func (r *ListRepository) Add(_ context.Context, list *entity.TaskList) error {
	r.session.trackList(list)
	return nil
}

func (r *ListRepository) SaveChanges(ctx context.Context) error {
	return r.session.SaveChanges(ctx)
}

// TaskRepository реализует usecase.TaskRepository поверх сессии.
type TaskRepository struct {
	session *Session
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TodoTask, error) {
	if _, gone := r.session.deleted[id]; gone {
		return nil, nil
	}
	if t, ok := r.session.tasks[id]; ok {
		return t, nil
	}

	t, err := r.session.backend.FindTask(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.session.loadedTasks[id] = t.State()
	return r.session.trackTask(t), nil
}

func (r *TaskRepository) Add(_ context.Context, task *entity.TodoTask) error {
	delete(r.session.deleted, task.ID())
	r.session.trackTask(task)
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, task *entity.TodoTask) error {
	r.session.trackTask(task)
	r.session.deleted[task.ID()] = struct{}{}
	return nil
}

func (r *TaskRepository) SaveChanges(ctx context.Context) error {
	return r.session.SaveChanges(ctx)
}
