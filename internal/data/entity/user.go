package entity

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	Base
	Username  string   `db:"username"`
	Email     string   `db:"email"`
	FirstName *string  `db:"first_name"`
	LastName  *string  `db:"last_name"`
	Bio       *string  `db:"bio"`
	Role      UserRole `db:"role"`
	IsActive  bool     `db:"is_active"`
	IsStaff   bool     `db:"is_staff"`
}

// IsAdmin covers the admin role and the staff flag equivalence
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsStaff
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
