package user

import (
	"strings"
	"time"
)

// User is the authenticated identity. Email doubles as the login key; the
// numeric id seeds the generated employee code.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string `gorm:"size:150;not null;default:''"`
	LastName     string `gorm:"size:150;not null;default:''"`
	Email        string `gorm:"size:255;not null;uniqueIndex:uq_users_email"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SplitFullName breaks a display name into first and last parts: the first
// whitespace-delimited token is the first name, the remainder the last name.
func SplitFullName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
