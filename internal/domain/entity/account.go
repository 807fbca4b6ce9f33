package entity

import (
	"strings"
	"time"
)

// Account roles used by the authentication boundary.
const (
	RoleUser     = "user"
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)

// Account represents a registered user of the platform. Operators and
// admins share this collection; an operator additionally has an Operator
// profile bound to a station.
type Account struct {
	ID           string    `bson:"_id,omitempty"`
	FirstName    string    `bson:"firstName"`
	LastName     string    `bson:"lastName"`
	Email        string    `bson:"email"`
	NIC          string    `bson:"nic"`
	Phone        string    `bson:"phone"`
	Role         string    `bson:"role"`
	PasswordHash string    `bson:"passwordHash"`
	Active       bool      `bson:"active"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// FullName returns the display name used in scan token snapshots.
func (a *Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
