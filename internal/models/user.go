package models

type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleInspector Role = "Inspector"
	RoleEngineer  Role = "Engineer"
)

// User is an account in the local user list. Users are seeded once and are
// read-only afterwards; there is no user CRUD in this scope.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// WithoutPassword returns a copy safe to store in a session.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInspector, RoleEngineer:
		return true
	}
	return false
}
