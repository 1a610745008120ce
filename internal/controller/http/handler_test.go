package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/KarpovAlexandrGo/todo-service/internal/metrics"
	"github.com/KarpovAlexandrGo/todo-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTodoUseCase struct {
	mock.Mock
}

func (m *mockTodoUseCase) CreateList(ctx context.Context, name string) (*entity.TaskList, error) {
	args := m.Called(ctx, name)
	list, _ := args.Get(0).(*entity.TaskList)
	return list, args.Error(1)
}

func (m *mockTodoUseCase) RenameList(ctx context.Context, listID uuid.UUID, name string) error {
	return m.Called(ctx, listID, name).Error(0)
}

func (m *mockTodoUseCase) CreateTask(ctx context.Context, listID uuid.UUID, title, description string) (*entity.TodoTask, error) {
	args := m.Called(ctx, listID, title, description)
	task, _ := args.Get(0).(*entity.TodoTask)
	return task, args.Error(1)
}

func (m *mockTodoUseCase) UpdateTaskTitle(ctx context.Context, taskID uuid.UUID, title string) error {
	return m.Called(ctx, taskID, title).Error(0)
}

func (m *mockTodoUseCase) UpdateTaskDescription(ctx context.Context, taskID uuid.UUID, description string) error {
	return m.Called(ctx, taskID, description).Error(0)
}

func (m *mockTodoUseCase) SetTaskDeadline(ctx context.Context, taskID uuid.UUID, deadline *time.Time) error {
	return m.Called(ctx, taskID, deadline).Error(0)
}

func (m *mockTodoUseCase) MarkTaskCompleted(ctx context.Context, taskID uuid.UUID) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *mockTodoUseCase) MarkTaskInProgress(ctx context.Context, taskID uuid.UUID) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *mockTodoUseCase) MoveTask(ctx context.Context, taskID, newListID uuid.UUID) error {
	return m.Called(ctx, taskID, newListID).Error(0)
}

func (m *mockTodoUseCase) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return m.Called(ctx, taskID).Error(0)
}

func newTestRouter(t *testing.T) (*mockTodoUseCase, http.Handler) {
	t.Helper()
	uc := &mockTodoUseCase{}
	uc.Test(t)
	t.Cleanup(func() { uc.AssertExpectations(t) })

	h := NewTodoHandler(func() usecase.TodoUseCase { return uc }, metrics.New(prometheus.NewRegistry()))
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return uc, r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestCreateList(t *testing.T) {
	uc, r := newTestRouter(t)
	list, err := entity.NewTaskList("Work")
	require.NoError(t, err)
	uc.On("CreateList", mock.Anything, "Work").Return(list, nil).Once()

	rec := do(t, r, http.MethodPost, "/v1/lists", `{"name":"Work"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/v1/lists/"+list.ID().String(), rec.Header().Get("Location"))

	var got entity.TaskListState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, list.State(), got)
}

func TestCreateList_ValidationError(t *testing.T) {
	uc, r := newTestRouter(t)
	uc.On("CreateList", mock.Anything, "").
		Return(nil, &entity.ValidationError{Field: "name", Message: "List name cannot be empty."}).Once()

	rec := do(t, r, http.MethodPost, "/v1/lists", `{"name":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "List name cannot be empty.", decodeError(t, rec))
}

func TestCreateList_MalformedBody(t *testing.T) {
	_, r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/v1/lists", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request payload", decodeError(t, rec))
}

func TestCreateTask(t *testing.T) {
	uc, r := newTestRouter(t)
	listID := uuid.New()
	task, err := entity.NewTodoTask(listID, "Submit report", "Submit the quarterly report")
	require.NoError(t, err)
	uc.On("CreateTask", mock.Anything, listID, "Submit report", "Submit the quarterly report").Return(task, nil).Once()

	body := `{"listId":"` + listID.String() + `","title":"Submit report","description":"Submit the quarterly report"}`
	rec := do(t, r, http.MethodPost, "/v1/tasks", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/v1/tasks/"+task.ID().String(), rec.Header().Get("Location"))

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, task.ID().String(), got["id"])
	assert.Equal(t, listID.String(), got["listId"])
	assert.Equal(t, false, got["isCompleted"])
	assert.Nil(t, got["deadline"])
}

func TestCreateTask_ListNotFound(t *testing.T) {
	uc, r := newTestRouter(t)
	listID := uuid.New()
	uc.On("CreateTask", mock.Anything, listID, "T", "Description").
		Return(nil, &usecase.NotFoundError{Resource: "List", ID: listID}).Once()

	body := `{"listId":"` + listID.String() + `","title":"T","description":"Description"}`
	rec := do(t, r, http.MethodPost, "/v1/tasks", body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "List '"+listID.String()+"' was not found.", decodeError(t, rec))
}

func TestCreateTask_InvalidListID(t *testing.T) {
	_, r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/v1/tasks", `{"listId":"nope","title":"T","description":"Description"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskEndpoints(t *testing.T) {
	id := uuid.New()
	target := uuid.New()
	deadline := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		setup  func(uc *mockTodoUseCase)
	}{
		{
			name:   "title",
			method: http.MethodPatch,
			path:   "/v1/tasks/" + id.String() + "/title",
			body:   `{"title":"New title"}`,
			setup: func(uc *mockTodoUseCase) {
				uc.On("UpdateTaskTitle", mock.Anything, id, "New title").Return(nil).Once()
			},
		},
		{
			name:   "description",
			method: http.MethodPatch,
			path:   "/v1/tasks/" + id.String() + "/description",
			body:   `{"description":"New description"}`,
			setup: func(uc *mockTodoUseCase) {
				uc.On("UpdateTaskDescription", mock.Anything, id, "New description").Return(nil).Once()
			},
		},
		{
			name:   "deadline",
			method: http.MethodPatch,
			path:   "/v1/tasks/" + id.String() + "/deadline",
			body:   `{"deadline":"2030-01-01T10:00:00Z"}`,
			setup: func(uc *mockTodoUseCase) {
				uc.On("SetTaskDeadline", mock.Anything, id, mock.MatchedBy(func(d *time.Time) bool {
					return d != nil && d.Equal(deadline)
				})).Return(nil).Once()
			},
		},
		{
			name:   "clear deadline",
			method: http.MethodPatch,
			path:   "/v1/tasks/" + id.String() + "/deadline",
			body:   `{"deadline":null}`,
			setup: func(uc *mockTodoUseCase) {
				uc.On("SetTaskDeadline", mock.Anything, id, (*time.Time)(nil)).Return(nil).Once()
			},
		},
		{
			name:   "complete",
			method: http.MethodPatch,
			path:   "/v1/tasks/" + id.String() + "/complete",
			setup: func(uc *mockTodoUseCase) {
				uc.On("MarkTaskCompleted", mock.Anything, id).Return(nil).Once()
			},
		},
		{
			name:   "in progress",
			method: http.MethodPatch,
			path:   "/v1/tasks/" + id.String() + "/in-progress",
			setup: func(uc *mockTodoUseCase) {
				uc.On("MarkTaskInProgress", mock.Anything, id).Return(nil).Once()
			},
		},
		{
			name:   "move",
			method: http.MethodPatch,
			path:   "/v1/tasks/" + id.String() + "/move",
			body:   `{"listId":"` + target.String() + `"}`,
			setup: func(uc *mockTodoUseCase) {
				uc.On("MoveTask", mock.Anything, id, target).Return(nil).Once()
			},
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/v1/tasks/" + id.String(),
			setup: func(uc *mockTodoUseCase) {
				uc.On("DeleteTask", mock.Anything, id).Return(nil).Once()
			},
		},
		{
			name:   "rename list",
			method: http.MethodPatch,
			path:   "/v1/lists/" + id.String() + "/name",
			body:   `{"name":"Home"}`,
			setup: func(uc *mockTodoUseCase) {
				uc.On("RenameList", mock.Anything, id, "Home").Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, r := newTestRouter(t)
			tt.setup(uc)

			rec := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestTaskEndpoints_InvalidID(t *testing.T) {
	_, r := newTestRouter(t)

	paths := []struct{ method, path string }{
		{http.MethodPatch, "/v1/tasks/not-a-uuid/complete"},
		{http.MethodPatch, "/v1/tasks/not-a-uuid/title"},
		{http.MethodDelete, "/v1/tasks/not-a-uuid"},
		{http.MethodPatch, "/v1/lists/not-a-uuid/name"},
	}
	for _, p := range paths {
		rec := do(t, r, p.method, p.path, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, p.path)
		assert.Equal(t, "Invalid ID format", decodeError(t, rec))
	}
}

func TestErrorMapping(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "validation",
			err:     &entity.ValidationError{Field: "deadline", Message: "Deadline cannot be in the past."},
			code:    http.StatusBadRequest,
			message: "Deadline cannot be in the past.",
		},
		{
			name:    "not found",
			err:     &usecase.NotFoundError{Resource: "Task", ID: id},
			code:    http.StatusNotFound,
			message: "Task '" + id.String() + "' was not found.",
		},
		{
			name:    "internal",
			err:     errors.New("failed to save task: connection reset"),
			code:    http.StatusInternalServerError,
			message: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, r := newTestRouter(t)
			uc.On("SetTaskDeadline", mock.Anything, id, mock.Anything).Return(tt.err).Once()

			rec := do(t, r, http.MethodPatch, "/v1/tasks/"+id.String()+"/deadline", `{"deadline":"2000-01-01T00:00:00Z"}`)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec))
		})
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
