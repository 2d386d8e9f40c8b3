package employee

import (
	"errors"
	"strings"

	employeeerrors "go-attendance/internal/employee/errors"
	usererrors "go-attendance/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError translates driver-level failures into domain errors.
// Unique violations are the concurrency backstop for the check-then-write
// validations, so they must surface as the same user-facing conflicts.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employees_employee_id":
				return employeeerrors.ErrEmployeeIDTaken
			case "uq_users_email":
				return usererrors.ErrEmailAlreadyRegistered
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_employee_id") {
		return employeeerrors.ErrEmployeeIDTaken
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_email") {
		return usererrors.ErrEmailAlreadyRegistered
	}

	return err
}
