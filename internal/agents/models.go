package agents

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Agent is the safe view of an agent record. The password hash never
// leaves this package.
type Agent struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Role      string
	Status    string
	CreatedAt time.Time
	LastLogin *time.Time
}

type CreateInput struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Password string
}

// UpdateInput carries a full replacement of the editable fields. An empty
// Password keeps the stored hash.
type UpdateInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}
