package usecase

import "evcharge-service/internal/domain/entity"

// Actor is the caller identity supplied by the authentication boundary.
// The engine trusts it as given and only applies the domain-specific
// ownership and assignment checks.
type Actor struct {
	AccountID string
	Role      string
}

// Admin reports whether the actor carries the admin role.
func (a Actor) Admin() bool { return a.Role == entity.RoleAdmin }
