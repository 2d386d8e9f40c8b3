package attendance

const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

type MarkAttendanceRequest struct {
	Action string `json:"action" form:"action" binding:"required,oneof=check_in check_out"`
}

type AttendanceResponse struct {
	ID           uint    `json:"id"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in"`
	CheckOut     *string `json:"check_out"`
	Status       string  `json:"status"`
	Notes        string  `json:"notes,omitempty"`
	WorkingHours string  `json:"working_hours"`
}

type MarkStatusResponse struct {
	CurrentDate string              `json:"current_date"`
	Today       *AttendanceResponse `json:"today"`
	CanCheckIn  bool                `json:"can_check_in"`
	CanCheckOut bool                `json:"can_check_out"`
}

type DashboardResponse struct {
	CurrentDate string               `json:"current_date"`
	Today       *AttendanceResponse  `json:"today"`
	PresentDays int64                `json:"present_days"`
	AbsentDays  int64                `json:"absent_days"`
	Recent      []AttendanceResponse `json:"recent"`
}

type HistoryTotals struct {
	Total   int64 `json:"total"`
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
	HalfDay int64 `json:"half_day"`
}

type HistoryResponse struct {
	Records []AttendanceResponse `json:"records"`
	Totals  HistoryTotals        `json:"totals"`
}
