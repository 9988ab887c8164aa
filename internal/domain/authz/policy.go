// Package authz implements the authorization policy for task access.
//
// The policy is a single pure function: given a resolved principal, a task
// that is known to exist, and the operation being attempted, it decides
// whether the operation is permitted. It performs no I/O and consults no
// state beyond its inputs, so the same inputs always yield the same
// decision. Callers must confirm the task exists before consulting the
// policy (a missing task is "not found", never "forbidden") and must
// consult it before applying any mutation.
package authz

import (
	"errors"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// Operation identifies the action a principal is attempting on a task.
type Operation string

const (
	OpRead   Operation = "read"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// ErrTaskNotOwned is returned when a non-admin principal attempts an
// operation on a task owned by someone else.
var ErrTaskNotOwned = errors.New("task not owned by principal")

// CanAccess decides whether the principal may perform op on the task.
// Access is allowed iff the principal holds the admin role or owns the
// task; the rule is identical for read, update, and delete. Owner identity
// is compared by UUID value, never by reference.
//
// Returns nil when access is allowed and ErrTaskNotOwned otherwise.
func CanAccess(principal domain.Principal, task *domain.Task, op Operation) error {
	if principal.IsAdmin() {
		return nil
	}
	if task.OwnerID == principal.ID {
		return nil
	}
	return ErrTaskNotOwned
}
