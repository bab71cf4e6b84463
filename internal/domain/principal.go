package domain

import "time"

// Principal is an administrative account permitted to mutate content.
// The password hash never leaves the server.
type Principal struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// AuthContext identifies the verified caller of a mutating operation.
type AuthContext struct {
	PrincipalID string
	Username    string
}
