package domain

// Role is one of the fixed access roles a user may hold.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ValidRole reports whether r belongs to the fixed role enumeration.
func ValidRole(r Role) bool {
	return r == RoleUser || r == RoleAdmin
}

// User is an identity record owned by the credential store. Usernames are
// unique and matched exactly (case-sensitive).
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Roles        []Role `json:"roles"`
}
