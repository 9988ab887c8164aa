package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestCanAccess(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	otherID := uuid.New()
	adminID := uuid.New()

	task := &domain.Task{
		ID:      uuid.New(),
		Title:   "Write quarterly report",
		Status:  domain.TaskStatusTodo,
		OwnerID: ownerID,
	}

	owner := domain.Principal{ID: ownerID, Role: domain.RoleUser}
	other := domain.Principal{ID: otherID, Role: domain.RoleUser}
	admin := domain.Principal{ID: adminID, Role: domain.RoleAdmin}

	tests := []struct {
		name      string
		principal domain.Principal
		op        Operation
		wantErr   error
	}{
		{name: "owner can read", principal: owner, op: OpRead, wantErr: nil},
		{name: "owner can update", principal: owner, op: OpUpdate, wantErr: nil},
		{name: "owner can delete", principal: owner, op: OpDelete, wantErr: nil},
		{name: "non-owner cannot read", principal: other, op: OpRead, wantErr: ErrTaskNotOwned},
		{name: "non-owner cannot update", principal: other, op: OpUpdate, wantErr: ErrTaskNotOwned},
		{name: "non-owner cannot delete", principal: other, op: OpDelete, wantErr: ErrTaskNotOwned},
		{name: "admin can read any task", principal: admin, op: OpRead, wantErr: nil},
		{name: "admin can update any task", principal: admin, op: OpUpdate, wantErr: nil},
		{name: "admin can delete any task", principal: admin, op: OpDelete, wantErr: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := CanAccess(tc.principal, task, tc.op)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanAccessAdminRoleNotOwnership(t *testing.T) {
	t.Parallel()

	// An admin who also happens to own the task is still allowed; the two
	// grounds for access are independent.
	adminID := uuid.New()
	admin := domain.Principal{ID: adminID, Role: domain.RoleAdmin}
	ownTask := &domain.Task{ID: uuid.New(), Title: "t", Status: domain.TaskStatusTodo, OwnerID: adminID}

	assert.NoError(t, CanAccess(admin, ownTask, OpDelete))
}
