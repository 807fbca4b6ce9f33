package entity

import "time"

// Operator is a station-scoped worker profile used for assignment. Name,
// email and phone are denormalized from the underlying account for read
// convenience and are refreshed whenever the account changes. At most one
// profile exists per account.
type Operator struct {
	ID        string    `bson:"_id,omitempty"`
	AccountID string    `bson:"accountId"`
	StationID string    `bson:"stationId"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	Active    bool      `bson:"active"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}
