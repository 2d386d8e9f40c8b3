package department

import (
	"time"
)

// DefaultName is the fallback department assigned when a requested department
// cannot be resolved or none exist yet.
const (
	DefaultName        = "General"
	DefaultDescription = "General Department"
)

type Department struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;uniqueIndex:uq_departments_name"`
	Description string `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Department) TableName() string {
	return "departments"
}
