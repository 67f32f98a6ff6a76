package attendance

import "errors"

// Attendance domain errors
var (
	ErrOutsideWorkingTime = errors.New("cannot check in or out outside working hours")
	ErrOnLeave            = errors.New("cannot check in or out while on leave")
	ErrNotCheckedIn       = errors.New("you need to check in first")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
