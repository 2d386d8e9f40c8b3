package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateIfAbsent(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID uint) ([]Attendance, error)
	FindRecentByEmployee(ctx context.Context, employeeID uint, limit int) ([]Attendance, error)
	CountByStatus(ctx context.Context, employeeID uint) (map[string]int64, error)
	SetCheckIn(ctx context.Context, employeeID uint, date, at time.Time) (bool, error)
	SetCheckOut(ctx context.Context, employeeID uint, date, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to an open transaction. The tx replaces the
// session's connection pool, the same way gorm's own Begin wires it.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

// CreateIfAbsent inserts the day's row unless one already exists. Concurrent
// marks for the same employee-day collapse into one row instead of racing a
// check-then-insert.
func (r *repository) CreateIfAbsent(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uint) ([]Attendance, error) {
	var records []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC, check_in DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) FindRecentByEmployee(ctx context.Context, employeeID uint, limit int) ([]Attendance, error) {
	var records []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC, check_in DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *repository) CountByStatus(ctx context.Context, employeeID uint) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Select("status, count(*) as count").
		Where("employee_id = ?", employeeID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// SetCheckIn stamps the check-in time only while the slot is still empty.
// The guard lives in the WHERE clause so two concurrent check-ins cannot
// both win; the loser sees false and no row changes. Checking in also resets
// the status to PRESENT, overriding an administrative ABSENT/LATE edit.
func (r *repository) SetCheckIn(ctx context.Context, employeeID uint, date, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE attendances
		SET check_in = ?, status = ?, updated_at = now()
		WHERE employee_id = ? AND date = ? AND check_in IS NULL
	`, at, StatusPresent, employeeID, date.Format("2006-01-02"))
	return res.RowsAffected > 0, res.Error
}

// SetCheckOut stamps the check-out time only after a check-in exists and
// while the check-out slot is still empty.
func (r *repository) SetCheckOut(ctx context.Context, employeeID uint, date, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE attendances
		SET check_out = ?, updated_at = now()
		WHERE employee_id = ? AND date = ? AND check_in IS NOT NULL AND check_out IS NULL
	`, at, employeeID, date.Format("2006-01-02"))
	return res.RowsAffected > 0, res.Error
}
