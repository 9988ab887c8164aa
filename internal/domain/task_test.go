package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("creates task with explicit fields", func(t *testing.T) {
		t.Parallel()
		due := time.Now().UTC().Add(48 * time.Hour)
		task, err := NewTask(ownerID, "Ship release", "cut the tag", TaskStatusInProgress, TaskPriorityHigh, &due)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, "Ship release", task.Title)
		assert.Equal(t, TaskStatusInProgress, task.Status)
		assert.Equal(t, TaskPriorityHigh, task.Priority)
		assert.Equal(t, ownerID, task.OwnerID)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, due, *task.DueDate)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	})

	t.Run("defaults status and priority when empty", func(t *testing.T) {
		t.Parallel()
		task, err := NewTask(ownerID, "Untriaged", "", "", "", nil)
		require.NoError(t, err)

		assert.Equal(t, TaskStatusTodo, task.Status)
		assert.Equal(t, TaskPriorityMedium, task.Priority)
		assert.Nil(t, task.DueDate)
	})

	tests := []struct {
		name     string
		ownerID  uuid.UUID
		title    string
		desc     string
		status   TaskStatus
		priority TaskPriority
		wantErr  error
	}{
		{name: "empty title", ownerID: ownerID, title: "", wantErr: ErrEmptyTaskTitle},
		{name: "whitespace title", ownerID: ownerID, title: "   ", wantErr: ErrEmptyTaskTitle},
		{name: "title too long", ownerID: ownerID, title: strings.Repeat("x", 201), wantErr: ErrTitleTooLong},
		{name: "description too long", ownerID: ownerID, title: "t", desc: strings.Repeat("x", 2001), wantErr: ErrDescriptionLimit},
		{name: "unknown status", ownerID: ownerID, title: "t", status: "archived", wantErr: ErrInvalidStatus},
		{name: "unknown priority", ownerID: ownerID, title: "t", priority: "urgent", wantErr: ErrInvalidPriority},
		{name: "missing owner", ownerID: uuid.Nil, title: "t", wantErr: ErrEmptyTaskOwner},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewTask(tc.ownerID, tc.title, tc.desc, tc.status, tc.priority, nil)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestTaskValidateBoundaries(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	// Exactly at the limits is valid.
	task, err := NewTask(ownerID, strings.Repeat("t", 200), strings.Repeat("d", 2000), "", "", nil)
	require.NoError(t, err)
	assert.NoError(t, task.Validate())
}

func TestTaskStatusValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskStatusTodo.Valid())
	assert.True(t, TaskStatusInProgress.Valid())
	assert.True(t, TaskStatusDone.Valid())
	assert.False(t, TaskStatus("").Valid())
	assert.False(t, TaskStatus("TODO").Valid())
}

func TestTaskPriorityValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TaskPriorityLow.Valid())
	assert.True(t, TaskPriorityMedium.Valid())
	assert.True(t, TaskPriorityHigh.Valid())
	assert.False(t, TaskPriority("critical").Valid())
}
