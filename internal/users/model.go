package users

import "time"

type Role string

const (
	RoleGuest Role = "GUEST"
	RoleUser  Role = "USER"
)

// Key is the authority string granted to a user holding the role.
func (r Role) Key() string {
	return "ROLE_" + string(r)
}

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"size:100;unique;not null"`
	Picture   string
	Role      Role `gorm:"size:16;not null;default:GUEST"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Update refreshes the profile fields taken from the identity provider.
func (u *User) Update(name, picture string) *User {
	u.Name = name
	u.Picture = picture
	return u
}

func (u *User) RoleKey() string {
	return u.Role.Key()
}
