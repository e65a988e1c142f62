package model

import "time"

// User represents an application user record as stored in the `users`
// table.  PasswordHash holds a bcrypt digest; the plain password never
// leaves the registration handler.  Role is either "user" or "admin".
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email (unique)
	Phone        string    // users.phone
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}

// Roles accepted in users.role.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
