package identity

import "time"

// Role names known to the service
const (
	RoleAdministrator = "Administrator"
	RoleUser          = "User"
)

// KnownRoles lists the roles that can be assigned to an account
var KnownRoles = []string{RoleAdministrator, RoleUser}

// User is an application account. Credentials are stored as bcrypt hashes;
// role membership lives in the user_roles table.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"size:100;not null;uniqueIndex"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:100;not null"`
	PhoneNumber  string `gorm:"size:20"`
	FirstName    string `gorm:"size:100"`
	LastName     string `gorm:"size:100"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Roles        []UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserRole is one role membership of a user
type UserRole struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	UserID uint   `gorm:"not null;index:idx_user_role,unique"`
	Role   string `gorm:"size:50;not null;index:idx_user_role,unique"`
}

// RoleNames flattens the role memberships to plain strings
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Role)
	}
	return names
}

// HasRole reports whether the user holds the given role
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}
