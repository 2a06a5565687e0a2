package model

import "time"

// Role names stored in users.role. There are exactly two capability
// levels: public users rent media and write support messages, staff
// manage the catalog and drive status transitions.
const (
	RolePublic = "public"
	RoleStaff  = "staff"
)

// User represents a row of the `users` table. Handlers define their own
// response types; PasswordHash never leaves the repository layer.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – users.role ("public" or "staff").
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
