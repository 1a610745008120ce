package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDescription = "Submit the quarterly report"

func newTask(t *testing.T) *TodoTask {
	t.Helper()
	task, err := NewTodoTask(uuid.New(), "Submit report", validDescription)
	require.NoError(t, err)
	return task
}

func TestNewTodoTask(t *testing.T) {
	listID := uuid.New()

	task, err := NewTodoTask(listID, "  Submit report ", "  "+validDescription+"  ")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, listID, task.ListID())
	assert.Equal(t, "Submit report", task.Title())
	assert.Equal(t, validDescription, task.Description())
	assert.False(t, task.IsCompleted())
	assert.Nil(t, task.Deadline())
}

func TestNewTodoTask_Validation(t *testing.T) {
	tests := []struct {
		name        string
		listID      uuid.UUID
		title       string
		description string
		field       string
		errMsg      string
	}{
		{
			name:        "nil list id",
			listID:      uuid.Nil,
			title:       "Title",
			description: validDescription,
			field:       "listId",
			errMsg:      "ListId is required.",
		},
		{
			name:        "empty title",
			listID:      uuid.New(),
			title:       "   ",
			description: validDescription,
			field:       "title",
			errMsg:      "Task title cannot be empty.",
		},
		{
			name:        "title over max",
			listID:      uuid.New(),
			title:       strings.Repeat("a", 201),
			description: validDescription,
			field:       "title",
			errMsg:      "Task title cannot exceed 200 characters.",
		},
		{
			name:        "description under min",
			listID:      uuid.New(),
			title:       "Title",
			description: strings.Repeat("b", 9),
			field:       "description",
			errMsg:      "Task description must be at least 10 characters.",
		},
		{
			name:        "description under min after trim",
			listID:      uuid.New(),
			title:       "Title",
			description: "   " + strings.Repeat("b", 9) + "   ",
			field:       "description",
			errMsg:      "Task description must be at least 10 characters.",
		},
		{
			name:        "description over max",
			listID:      uuid.New(),
			title:       "Title",
			description: strings.Repeat("b", 2001),
			field:       "description",
			errMsg:      "Task description cannot exceed 2000 characters.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTodoTask(tt.listID, tt.title, tt.description)
			require.Error(t, err)
			assert.Nil(t, task)
			assert.ErrorIs(t, err, ErrValidation)
			assert.EqualError(t, err, tt.errMsg)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestNewTodoTask_Boundaries(t *testing.T) {
	listID := uuid.New()

	_, err := NewTodoTask(listID, strings.Repeat("a", 200), validDescription)
	assert.NoError(t, err)

	_, err = NewTodoTask(listID, "a", validDescription)
	assert.NoError(t, err)

	_, err = NewTodoTask(listID, "Title", strings.Repeat("b", 10))
	assert.NoError(t, err)

	_, err = NewTodoTask(listID, "Title", strings.Repeat("b", 2000))
	assert.NoError(t, err)
}

func TestTodoTask_UpdateTitle(t *testing.T) {
	task := newTask(t)
	before := task.State()

	require.NoError(t, task.UpdateTitle("  New title "))
	assert.Equal(t, "New title", task.Title())
	assert.Equal(t, before.Description, task.Description())
	assert.Equal(t, before.ListID, task.ListID())

	assert.ErrorIs(t, task.UpdateTitle(""), ErrValidation)
	assert.ErrorIs(t, task.UpdateTitle(strings.Repeat("a", 201)), ErrValidation)
	assert.Equal(t, "New title", task.Title())
}

func TestTodoTask_UpdateDescription(t *testing.T) {
	task := newTask(t)

	require.NoError(t, task.UpdateDescription(" A longer description "))
	assert.Equal(t, "A longer description", task.Description())
	assert.Equal(t, "Submit report", task.Title())

	assert.ErrorIs(t, task.UpdateDescription("too short"), ErrValidation)
	assert.ErrorIs(t, task.UpdateDescription(strings.Repeat("x", 2001)), ErrValidation)
	assert.Equal(t, "A longer description", task.Description())
}

func TestTodoTask_MoveToList(t *testing.T) {
	task := newTask(t)
	original := task.ListID()

	err := task.MoveToList(uuid.Nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, original, task.ListID())

	target := uuid.New()
	require.NoError(t, task.MoveToList(target))
	assert.Equal(t, target, task.ListID())
}

func TestTodoTask_CompletionRoundTrip(t *testing.T) {
	task := newTask(t)

	task.MarkCompleted()
	task.MarkCompleted()
	assert.True(t, task.IsCompleted())

	task.MarkInProgress()
	task.MarkInProgress()
	assert.False(t, task.IsCompleted())
}

func TestTodoTask_SetDeadline(t *testing.T) {
	task := newTask(t)

	past := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	task.SetDeadline(&past)
	require.NotNil(t, task.Deadline())
	assert.True(t, past.Equal(*task.Deadline()))

	// внешнее изменение не влияет на сущность
	past = past.Add(time.Hour)
	assert.False(t, past.Equal(*task.Deadline()))

	task.SetDeadline(nil)
	assert.Nil(t, task.Deadline())
}

func TestRestoreTodoTask(t *testing.T) {
	deadline := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	state := TodoTaskState{
		ID:          uuid.New(),
		ListID:      uuid.New(),
		Title:       "Stored",
		Description: "",
		IsCompleted: true,
		Deadline:    &deadline,
	}

	task := RestoreTodoTask(state)
	assert.Equal(t, state, task.State())
}
