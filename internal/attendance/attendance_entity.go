package attendance

import "time"

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
)

// Attendance is one employee-day. The unique index over (employee_id, date)
// is what keeps concurrent marks from splitting a day into two rows.
type Attendance struct {
	ID         uint       `gorm:"primaryKey"`
	EmployeeID uint       `gorm:"not null;uniqueIndex:uq_attendances_employee_date"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:uq_attendances_employee_date"`
	CheckIn    *time.Time `gorm:"type:timestamptz"`
	CheckOut   *time.Time `gorm:"type:timestamptz"`
	Status     string     `gorm:"size:10;not null;default:PRESENT"`
	Notes      string     `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Attendance) TableName() string {
	return "attendances"
}
