package domain

import (
	"time"

	"github.com/google/uuid"
)

// Assignment is one (client, employee, year, month, task) work item. The same
// record is kept in two mirrors: the client's employeeAssignments and the
// employee's assignedClients. Both mirrors must agree on IsRemoved and the
// accounting-done fields; divergence is a consistency defect.
type Assignment struct {
	ClientID     uuid.UUID `json:"clientId"`
	ClientName   string    `json:"clientName,omitempty"`
	EmployeeID   uuid.UUID `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	Year         string    `json:"year"`
	Month        string    `json:"month"`
	Task         TaskType  `json:"task"`

	AssignedAt time.Time `json:"assignedAt"`
	AssignedBy uuid.UUID `json:"assignedBy"`
	AdminName  string    `json:"adminName"`

	IsRemoved bool `json:"isRemoved"`

	AccountingDone   bool       `json:"accountingDone"`
	AccountingDoneAt *time.Time `json:"accountingDoneAt,omitempty"`
	AccountingDoneBy string     `json:"accountingDoneBy,omitempty"`
}

// AssignmentKey identifies an assignment. At most one active (IsRemoved=false)
// assignment may exist per key.
type AssignmentKey struct {
	ClientID   uuid.UUID
	EmployeeID uuid.UUID
	Year       string
	Month      string
	Task       TaskType
}

// Key returns the assignment's identity key.
func (a *Assignment) Key() AssignmentKey {
	return AssignmentKey{
		ClientID:   a.ClientID,
		EmployeeID: a.EmployeeID,
		Year:       a.Year,
		Month:      a.Month,
		Task:       a.Task,
	}
}

// Matches reports whether the assignment has the given key.
func (a *Assignment) Matches(k AssignmentKey) bool {
	return a.ClientID == k.ClientID &&
		a.EmployeeID == k.EmployeeID &&
		a.Year == k.Year &&
		a.Month == k.Month &&
		a.Task == k.Task
}

// FindActive returns a pointer to the active assignment with the given key in
// the slice, or nil.
func FindActive(assignments []Assignment, k AssignmentKey) *Assignment {
	for i := range assignments {
		if !assignments[i].IsRemoved && assignments[i].Matches(k) {
			return &assignments[i]
		}
	}
	return nil
}

// RemovedAssignment is the immutable archive record produced by exactly one
// assignment removal.
type RemovedAssignment struct {
	ID uuid.UUID `json:"id" db:"id"`

	ClientID     uuid.UUID `json:"clientId" db:"client_id"`
	ClientName   string    `json:"clientName" db:"client_name"`
	EmployeeID   uuid.UUID `json:"employeeId" db:"employee_id"`
	EmployeeName string    `json:"employeeName" db:"employee_name"`
	Year         string    `json:"year" db:"year"`
	Month        string    `json:"month" db:"month"`
	Task         TaskType  `json:"task" db:"task"`

	AssignedAt time.Time `json:"assignedAt" db:"assigned_at"`
	AssignedBy uuid.UUID `json:"assignedBy" db:"assigned_by"`
	AdminName  string    `json:"adminName" db:"admin_name"`

	RemovedAt     time.Time `json:"removedAt" db:"removed_at"`
	RemovedBy     uuid.UUID `json:"removedBy" db:"removed_by"`
	RemoverName   string    `json:"removerName" db:"remover_name"`
	RemovalReason string    `json:"removalReason" db:"removal_reason"`

	WasAccountingDone bool `json:"wasAccountingDone" db:"was_accounting_done"`
	DurationDays      int  `json:"durationDays" db:"duration_days"`
}

// RemovalFilter narrows removed-assignment archive listing. Zero-value
// fields mean "any".
type RemovalFilter struct {
	ClientID   uuid.UUID
	EmployeeID uuid.UUID
	Year       string
	Month      string
	Task       TaskType
	Limit      int
	Offset     int
}

// NewRemovedAssignment snapshots an assignment at removal time. DurationDays
// is the whole number of days between assignment and removal.
func NewRemovedAssignment(a Assignment, removedAt time.Time, removedBy uuid.UUID, removerName, reason string) RemovedAssignment {
	days := int(removedAt.Sub(a.AssignedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return RemovedAssignment{
		ID:                uuid.New(),
		ClientID:          a.ClientID,
		ClientName:        a.ClientName,
		EmployeeID:        a.EmployeeID,
		EmployeeName:      a.EmployeeName,
		Year:              a.Year,
		Month:             a.Month,
		Task:              a.Task,
		AssignedAt:        a.AssignedAt,
		AssignedBy:        a.AssignedBy,
		AdminName:         a.AdminName,
		RemovedAt:         removedAt,
		RemovedBy:         removedBy,
		RemoverName:       removerName,
		RemovalReason:     reason,
		WasAccountingDone: a.AccountingDone,
		DurationDays:      days,
	}
}
