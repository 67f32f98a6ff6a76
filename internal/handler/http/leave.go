package http

import (
	"encoding/json"
	"net/http"

	"github.com/etrackhq/etrack-backend-go/internal/domain/leave"
	"github.com/etrackhq/etrack-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	SetOnLeave(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// SetOnLeave implements LeaveHandler.
func (h *leaveHandlerImpl) SetOnLeave(w http.ResponseWriter, r *http.Request) {
	var req leave.SetOnLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.leaveService.SetOnLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave recorded", resp)
}
