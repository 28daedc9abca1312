package domain

import "time"

// DefaultLocationKey is where new accounts start out.
const DefaultLocationKey = "thornwick"

// User represents a player account. Identity resolution (sessions, platform
// auth) is an external collaborator; the engine only needs a stable id.
type User struct {
	ID          string    `json:"user_id"`
	Username    string    `json:"username"`
	LocationKey string    `json:"location_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
