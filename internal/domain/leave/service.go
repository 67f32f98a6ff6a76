package leave

import "context"

// LeaveService marks employees on leave. Leave days are represented as
// on_leave attendance markers so the calculator can excuse them without
// consulting a separate store.
type LeaveService interface {
	// SetOnLeave upserts an on_leave marker for every day in the range
	SetOnLeave(ctx context.Context, req SetOnLeaveRequest) (SetOnLeaveResponse, error)
}
