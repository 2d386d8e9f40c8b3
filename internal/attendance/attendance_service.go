package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/shared/contextutil"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileResolver supplies the employee key for an authenticated identity,
// creating the profile when the identity has none yet.
type ProfileResolver interface {
	EnsureEmployeeID(ctx context.Context, userID uint) (uint, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// MarkStatus reports what the employee can do right now: today's record
	// plus which of the two actions is still open.
	MarkStatus(ctx context.Context, userID uint) (MarkStatusResponse, error)

	// Apply performs a check-in or check-out. Invalid transitions come back
	// as typed errors and leave the record untouched.
	Apply(ctx context.Context, userID uint, action string) (string, AttendanceResponse, error)

	Dashboard(ctx context.Context, userID uint) (DashboardResponse, error)
	History(ctx context.Context, userID uint) (HistoryResponse, error)
	ExportHistory(ctx context.Context, userID uint) (*excelize.File, string, error)
}

type service struct {
	repo     Repository
	profiles ProfileResolver
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(repo Repository, profiles ProfileResolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		repo:     repo,
		profiles: profiles,
		now:      time.Now,
		logger:   l,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *service) MarkStatus(ctx context.Context, userID uint) (MarkStatusResponse, error) {
	employeeID, err := s.profiles.EnsureEmployeeID(ctx, userID)
	if err != nil {
		return MarkStatusResponse{}, err
	}

	now := s.now()
	today := dateOnly(now)

	// Viewing the mark page materializes today's row, present by default.
	if err := s.repo.CreateIfAbsent(ctx, &Attendance{
		EmployeeID: employeeID,
		Date:       today,
		Status:     StatusPresent,
	}); err != nil {
		return MarkStatusResponse{}, err
	}

	record, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return MarkStatusResponse{}, err
	}

	mapped := mapToAttendanceResponse(record)
	return MarkStatusResponse{
		CurrentDate: now.Format("Monday, January 2, 2006"),
		Today:       &mapped,
		CanCheckIn:  record.CheckIn == nil,
		CanCheckOut: record.CheckIn != nil && record.CheckOut == nil,
	}, nil
}

func (s *service) Apply(ctx context.Context, userID uint, action string) (string, AttendanceResponse, error) {
	employeeID, err := s.profiles.EnsureEmployeeID(ctx, userID)
	if err != nil {
		return "", AttendanceResponse{}, err
	}

	now := s.now()
	today := dateOnly(now)

	var message string
	switch action {
	case ActionCheckIn:
		if err := s.repo.CreateIfAbsent(ctx, &Attendance{
			EmployeeID: employeeID,
			Date:       today,
			Status:     StatusPresent,
		}); err != nil {
			return "", AttendanceResponse{}, err
		}

		marked, err := s.repo.SetCheckIn(ctx, employeeID, today, now)
		if err != nil {
			return "", AttendanceResponse{}, err
		}
		if !marked {
			return "", AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		message = "Checked in successfully at " + now.Format("15:04")

	case ActionCheckOut:
		marked, err := s.repo.SetCheckOut(ctx, employeeID, today, now)
		if err != nil {
			return "", AttendanceResponse{}, err
		}
		if !marked {
			// Zero rows means either no check-in yet or the day is already
			// closed; the record itself tells which.
			record, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", AttendanceResponse{}, attendanceerrors.ErrCheckInRequired
			}
			if err != nil {
				return "", AttendanceResponse{}, err
			}
			if record.CheckIn == nil {
				return "", AttendanceResponse{}, attendanceerrors.ErrCheckInRequired
			}
			return "", AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
		}
		message = "Checked out successfully at " + now.Format("15:04")

	default:
		return "", AttendanceResponse{}, attendanceerrors.ErrUnknownAction
	}

	contextutil.GetLogger(ctx, s.logger).Info("attendance marked",
		zap.Uint("employee_id", employeeID),
		zap.String("action", action),
	)

	record, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return "", AttendanceResponse{}, err
	}
	return message, mapToAttendanceResponse(record), nil
}

func (s *service) Dashboard(ctx context.Context, userID uint) (DashboardResponse, error) {
	employeeID, err := s.profiles.EnsureEmployeeID(ctx, userID)
	if err != nil {
		return DashboardResponse{}, err
	}

	now := s.now()
	resp := DashboardResponse{
		CurrentDate: now.Format("Monday, January 2, 2006"),
	}

	today, err := s.repo.FindByEmployeeAndDate(ctx, employeeID, dateOnly(now))
	if err == nil {
		mapped := mapToAttendanceResponse(today)
		resp.Today = &mapped
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return DashboardResponse{}, err
	}

	counts, err := s.repo.CountByStatus(ctx, employeeID)
	if err != nil {
		return DashboardResponse{}, err
	}
	resp.PresentDays = counts[StatusPresent]
	resp.AbsentDays = counts[StatusAbsent]

	recent, err := s.repo.FindRecentByEmployee(ctx, employeeID, 5)
	if err != nil {
		return DashboardResponse{}, err
	}
	resp.Recent = mapToAttendanceResponses(recent)

	return resp, nil
}

func (s *service) History(ctx context.Context, userID uint) (HistoryResponse, error) {
	employeeID, err := s.profiles.EnsureEmployeeID(ctx, userID)
	if err != nil {
		return HistoryResponse{}, err
	}

	records, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		return HistoryResponse{}, err
	}

	counts, err := s.repo.CountByStatus(ctx, employeeID)
	if err != nil {
		return HistoryResponse{}, err
	}

	return HistoryResponse{
		Records: mapToAttendanceResponses(records),
		Totals: HistoryTotals{
			Total:   int64(len(records)),
			Present: counts[StatusPresent],
			Absent:  counts[StatusAbsent],
			Late:    counts[StatusLate],
			HalfDay: counts[StatusHalfDay],
		},
	}, nil
}

func (s *service) ExportHistory(ctx context.Context, userID uint) (*excelize.File, string, error) {
	history, err := s.History(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Check In", "Check Out", "Status", "Working Hours", "Notes"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	for rowIdx, record := range history.Records {
		values := []any{
			record.Date,
			derefOrDash(record.CheckIn),
			derefOrDash(record.CheckOut),
			record.Status,
			record.WorkingHours,
			record.Notes,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", s.now().Format("20060102"))
	return f, filename, nil
}

func derefOrDash(s *string) string {
	if s == nil {
		return "--"
	}
	return *s
}

func mapToAttendanceResponse(a *Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		Date:         a.Date.Format("2006-01-02"),
		Status:       a.Status,
		Notes:        a.Notes,
		WorkingHours: FormatWorkingHours(a),
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format("15:04")
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format("15:04")
		resp.CheckOut = &v
	}
	return resp
}

func mapToAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, mapToAttendanceResponse(&records[i]))
	}
	return out
}
