package http

import (
	"net/http"

	"github.com/etrackhq/etrack-backend-go/internal/domain/attendance"
	domauth "github.com/etrackhq/etrack-backend-go/internal/domain/auth"
	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/handler/http/response"
	"github.com/etrackhq/etrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyStatus(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	RealtimeToken(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.CheckIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", status)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", status)
}

// GetMyStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// GetStatus implements AttendanceHandler. Manager view of any employee's
// live status.
func (h *attendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	status, err := h.attendanceService.StatusFor(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// RealtimeToken issues the short-lived token the SSE stream endpoint
// accepts as a query parameter, since EventSource cannot send headers.
func (h *attendanceHandlerImpl) RealtimeToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, domauth.ErrInvalidToken)
		return
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		response.HandleError(w, domauth.ErrInvalidToken)
		return
	}
	role, _ := claims["role"].(string)

	token, expiresIn, err := h.jwtService.GenerateSSEToken(employeeID, employee.Role(role))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}
