package workinghours

import (
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/pkg/validator"
)

type UpdateRequest struct {
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidTimeOfDay(r.StartTime)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	end, endOK := validator.IsValidTimeOfDay(r.EndTime)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if startOK && endOK && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToWorkingHours converts a validated request into the entity. Call
// Validate first; parse errors are ignored here.
func (r *UpdateRequest) ToWorkingHours() WorkingHours {
	start, _ := time.Parse("15:04", r.StartTime)
	end, _ := time.Parse("15:04", r.EndTime)
	return WorkingHours{StartTime: start, EndTime: end}
}

type Response struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	UpdatedAt string `json:"updated_at"`
}

func NewResponse(w WorkingHours) Response {
	return Response{
		StartTime: w.StartTime.Format("15:04"),
		EndTime:   w.EndTime.Format("15:04"),
		UpdatedAt: w.UpdatedAt.Format(time.RFC3339),
	}
}
