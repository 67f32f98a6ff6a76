package http

import (
	"encoding/json"
	"net/http"

	"github.com/etrackhq/etrack-backend-go/internal/domain/workinghours"
	"github.com/etrackhq/etrack-backend-go/internal/handler/http/response"
)

type WorkingHoursHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type workingHoursHandlerImpl struct {
	repo workinghours.Repository
}

func NewWorkingHoursHandler(repo workinghours.Repository) WorkingHoursHandler {
	return &workingHoursHandlerImpl{repo: repo}
}

// Get implements WorkingHoursHandler.
func (h *workingHoursHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	hours, err := h.repo.Resolve(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workinghours.NewResponse(hours))
}

// Update implements WorkingHoursHandler.
func (h *workingHoursHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req workinghours.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.repo.Update(r.Context(), req.ToWorkingHours())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Working hours updated", workinghours.NewResponse(updated))
}
