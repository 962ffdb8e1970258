package dashboard

import (
	"github.com/google/uuid"
	"github.com/ledgerdesk/ledgerdesk-backend/internal/domain"
)

// UnassignedClient is an active client whose current-bucket task coverage is
// incomplete, with the list of canonical tasks still unassigned.
type UnassignedClient struct {
	ClientID     uuid.UUID         `json:"clientId"`
	ClientName   string            `json:"clientName"`
	MissingTasks []domain.TaskType `json:"missingTasks"`
}

// IdleEmployee is an active employee with no active assignment in the
// current bucket.
type IdleEmployee struct {
	EmployeeID   uuid.UUID `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
}

// PendingTask is one not-yet-done assignment on an incomplete client.
type PendingTask struct {
	Task         domain.TaskType `json:"task"`
	EmployeeName string          `json:"employeeName"`
}

// IncompleteClient is an active client with at least one active assignment
// whose accounting is not done in the current bucket.
type IncompleteClient struct {
	ClientID   uuid.UUID     `json:"clientId"`
	ClientName string        `json:"clientName"`
	Pending    []PendingTask `json:"pendingTasks"`
}

// ClientNoteCount is one row of the recent-notes ranking.
type ClientNoteCount struct {
	ClientID   uuid.UUID `json:"clientId"`
	ClientName string    `json:"clientName"`
	NoteCount  int       `json:"noteCount"`
}

// ClientUnviewedSummary is one row of the unviewed-notes ranking, broken down
// by bucket label.
type ClientUnviewedSummary struct {
	ClientID   uuid.UUID      `json:"clientId"`
	ClientName string         `json:"clientName"`
	Total      int            `json:"total"`
	ByBucket   map[string]int `json:"byBucket"`
}

// LockedUpload is a client whose month is locked yet holds uploaded files —
// the intentionally-detected anomaly state.
type LockedUpload struct {
	ClientID   uuid.UUID `json:"clientId"`
	ClientName string    `json:"clientName"`
	TotalFiles int       `json:"totalFiles"`
}

// Overview bundles every dashboard metric for one resolved window.
type Overview struct {
	Window            domain.Window             `json:"window"`
	CurrentBucket     domain.Bucket             `json:"currentBucket"`
	UnassignedClients []UnassignedClient        `json:"unassignedClients"`
	IdleEmployees     []IdleEmployee            `json:"idleEmployees"`
	IncompleteTasks   []IncompleteClient        `json:"incompleteTasks"`
	RecentNotes       []ClientNoteCount         `json:"recentNotes"`
	UnviewedSummary   []ClientUnviewedSummary   `json:"unviewedSummary"`
	UploadedButLocked map[string][]LockedUpload `json:"uploadedButLocked"`
}
