package attendance

// StatusResponse is the live attendance view for one employee on one day.
// Lateness and WorkDuration are rendered HH:MM; empty check-in/out lists
// render as a single "N/A" entry.
type StatusResponse struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name,omitempty"`
	Date         string      `json:"date"`
	CheckIns     []string    `json:"check_ins"`
	CheckOuts    []string    `json:"check_outs"`
	Lateness     string      `json:"lateness"`
	WorkDuration string      `json:"work_duration"`
	Status       EventStatus `json:"status"`
}
