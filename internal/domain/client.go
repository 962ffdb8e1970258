package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is an accounting client and the owner of a document bundle plus the
// client-side assignment mirror. Documents and EmployeeAssignments are
// persisted as whole documents; Version is the optimistic-lock counter
// checked and incremented on every save.
type Client struct {
	ID       uuid.UUID
	Name     string
	Email    string
	Company  string
	IsActive bool

	Documents           DocumentTree
	EmployeeAssignments []Assignment

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewClient creates an active client with an empty document tree.
func NewClient(name, email, company string) *Client {
	return &Client{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Company:   company,
		IsActive:  true,
		Documents: DocumentTree{},
	}
}

// ActiveAssignments returns the client-side assignments with IsRemoved=false.
func (c *Client) ActiveAssignments() []Assignment {
	var out []Assignment
	for _, a := range c.EmployeeAssignments {
		if !a.IsRemoved {
			out = append(out, a)
		}
	}
	return out
}
