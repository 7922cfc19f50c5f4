package entity

import "time"

// Roles an identity can hold. Publishers may own a single bootcamp;
// admins bypass ownership checks entirely.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash and is never serialized.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRole reports whether r is a role a caller may self-assign at
// registration. Admin is excluded; admins are created by other admins.
func ValidRole(r string) bool {
	return r == RoleUser || r == RolePublisher
}

// CanAccess reports whether the user may mutate a resource owned by
// ownerID. Admins may mutate anything.
func (u *User) CanAccess(ownerID string) bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || u.ID == ownerID
}
