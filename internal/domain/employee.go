package domain

import (
	"time"

	"github.com/google/uuid"
)

// Employee is a staff member carrying the employee-side assignment mirror.
// AssignedClients is persisted as a whole document; Version is the
// optimistic-lock counter.
type Employee struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Role     ActorRole
	IsActive bool

	AssignedClients []Assignment

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEmployee creates an active employee with no assignments.
func NewEmployee(name, email string, role ActorRole) *Employee {
	return &Employee{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Role:     role,
		IsActive: true,
	}
}

// ActiveAssignments returns the employee-side assignments with IsRemoved=false.
func (e *Employee) ActiveAssignments() []Assignment {
	var out []Assignment
	for _, a := range e.AssignedClients {
		if !a.IsRemoved {
			out = append(out, a)
		}
	}
	return out
}
