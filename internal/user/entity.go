// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

// RoleUser is the only role self-service signup grants.
const RoleUser = "user"

// User is an account row. Accounts are never deleted.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
