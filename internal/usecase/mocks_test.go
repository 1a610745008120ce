package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockListRepository struct {
	mock.Mock
}

func (m *mockListRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaskList, error) {
	args := m.Called(ctx, id)
	list, _ := args.Get(0).(*entity.TaskList)
	return list, args.Error(1)
}

func (m *mockListRepository) Add(ctx context.Context, list *entity.TaskList) error {
	return m.Called(ctx, list).Error(0)
}

func (m *mockListRepository) SaveChanges(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockTaskRepository struct {
	mock.Mock
}

func (m *mockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TodoTask, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*entity.TodoTask)
	return task, args.Error(1)
}

func (m *mockTaskRepository) Add(ctx context.Context, task *entity.TodoTask) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskRepository) Delete(ctx context.Context, task *entity.TodoTask) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockTaskRepository) SaveChanges(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

// fakeStore - репозитории в памяти для сквозных сценариев.
// Изменения видны другим use case только после SaveChanges.
type fakeStore struct {
	mu    sync.Mutex
	lists map[uuid.UUID]entity.TaskListState
	tasks map[uuid.UUID]entity.TodoTaskState
	saves int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists: make(map[uuid.UUID]entity.TaskListState),
		tasks: make(map[uuid.UUID]entity.TodoTaskState),
	}
}

func (s *fakeStore) useCase(clock Clock) *TodoUseCaseImpl {
	tx := &fakeTx{store: s}
	return NewTodoUseCase(&fakeListRepository{tx: tx}, &fakeTaskRepository{tx: tx}, clock)
}

func (s *fakeStore) task(id uuid.UUID) (entity.TodoTaskState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.tasks[id]
	return st, ok
}

type fakeTx struct {
	store        *fakeStore
	loadedLists  []*entity.TaskList
	loadedTasks  []*entity.TodoTask
	deletedTasks []uuid.UUID
}

func (tx *fakeTx) save() {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range tx.loadedLists {
		s.lists[l.ID()] = l.State()
	}
	for _, t := range tx.loadedTasks {
		s.tasks[t.ID()] = t.State()
	}
	for _, id := range tx.deletedTasks {
		delete(s.tasks, id)
	}
	tx.loadedLists, tx.loadedTasks, tx.deletedTasks = nil, nil, nil
	s.saves++
}

type fakeListRepository struct{ tx *fakeTx }

func (r *fakeListRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.TaskList, error) {
	r.tx.store.mu.Lock()
	st, ok := r.tx.store.lists[id]
	r.tx.store.mu.Unlock()
	if !ok {
		return nil, nil
	}
	list := entity.RestoreTaskList(st)
	r.tx.loadedLists = append(r.tx.loadedLists, list)
	return list, nil
}

func (r *fakeListRepository) Add(_ context.Context, list *entity.TaskList) error {
	r.tx.loadedLists = append(r.tx.loadedLists, list)
	return nil
}

func (r *fakeListRepository) SaveChanges(context.Context) error {
	r.tx.save()
	return nil
}

type fakeTaskRepository struct{ tx *fakeTx }

func (r *fakeTaskRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.TodoTask, error) {
	r.tx.store.mu.Lock()
	st, ok := r.tx.store.tasks[id]
	r.tx.store.mu.Unlock()
	if !ok {
		return nil, nil
	}
	task := entity.RestoreTodoTask(st)
	r.tx.loadedTasks = append(r.tx.loadedTasks, task)
	return task, nil
}

func (r *fakeTaskRepository) Add(_ context.Context, task *entity.TodoTask) error {
	r.tx.loadedTasks = append(r.tx.loadedTasks, task)
	return nil
}

func (r *fakeTaskRepository) Delete(_ context.Context, task *entity.TodoTask) error {
	r.tx.deletedTasks = append(r.tx.deletedTasks, task.ID())
	return nil
}

func (r *fakeTaskRepository) SaveChanges(context.Context) error {
	r.tx.save()
	return nil
}
