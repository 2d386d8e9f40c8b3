package auth

import (
	"errors"
	"strings"

	employeeerrors "go-attendance/internal/employee/errors"
	usererrors "go-attendance/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError keeps the registration validations honest under
// concurrency: the unique indexes catch what the pre-checks raced past.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_users_email":
				return usererrors.ErrEmailAlreadyRegistered
			case "uq_employees_employee_id":
				return employeeerrors.ErrEmployeeIDTaken
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_email") {
		return usererrors.ErrEmailAlreadyRegistered
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_employees_employee_id") {
		return employeeerrors.ErrEmployeeIDTaken
	}

	return err
}
