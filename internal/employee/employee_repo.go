package employee

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	CreateIfAbsent(ctx context.Context, e *Employee) error
	FindByUserID(ctx context.Context, userID uint) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID uint) (bool, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	if e.DateJoined.IsZero() {
		e.DateJoined = time.Now()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

// CreateIfAbsent inserts the profile unless one already exists for the user.
// ON CONFLICT DO NOTHING makes concurrent ensure-profile calls for the same
// identity collapse into a single row instead of racing check-then-insert.
func (r *repository) CreateIfAbsent(ctx context.Context, e *Employee) error {
	if e.DateJoined.IsZero() {
		e.DateJoined = time.Now()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(e).Error
}

func (r *repository) FindByUserID(ctx context.Context, userID uint) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("user_id = ?", userID).
		First(&e).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&Employee{}).Where("employee_id = ?", employeeID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
