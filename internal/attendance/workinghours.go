package attendance

import "fmt"

// FormatWorkingHours renders the span between check-in and check-out as a
// short duration label. Minutes of the clock only: an overnight checkout
// yields a negative span and renders as "--" like an unfinished day.
func FormatWorkingHours(a *Attendance) string {
	if a == nil || a.CheckIn == nil || a.CheckOut == nil {
		return "--"
	}

	in := a.CheckIn.Hour()*60 + a.CheckIn.Minute()
	out := a.CheckOut.Hour()*60 + a.CheckOut.Minute()
	total := out - in
	if total <= 0 {
		return "--"
	}

	hours := total / 60
	minutes := total % 60
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
