package employee

import (
	"fmt"
	"time"

	"go-attendance/internal/department"
)

type Employee struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"not null;uniqueIndex:uq_employees_user"`
	EmployeeID     string `gorm:"size:20;not null;uniqueIndex:uq_employees_employee_id"`
	DepartmentID   *uint
	Phone          string    `gorm:"size:15;not null;default:''"`
	Address        string    `gorm:"type:text;not null;default:''"`
	ProfilePicture string    `gorm:"size:255;not null;default:''"`
	DateJoined     time.Time `gorm:"type:date;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Department *department.Department `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

// GeneratedCode is the employee code assigned to lazily created profiles,
// derived from the identity's numeric id.
func GeneratedCode(userID uint) string {
	return fmt.Sprintf("EMP%03d", userID)
}
