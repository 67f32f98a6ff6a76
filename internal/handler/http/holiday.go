package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/etrackhq/etrack-backend-go/internal/domain/holiday"
	"github.com/etrackhq/etrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	repo holiday.Repository
	loc  *time.Location
}

func NewHolidayHandler(repo holiday.Repository, loc *time.Location) HolidayHandler {
	return &holidayHandlerImpl{repo: repo, loc: loc}
}

// List implements HolidayHandler.
func (h *holidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.repo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, hd := range holidays {
		items = append(items, holiday.NewHolidayResponse(hd))
	}

	response.Success(w, items)
}

// Add implements HolidayHandler.
func (h *holidayHandlerImpl) Add(w http.ResponseWriter, r *http.Request) {
	var req holiday.AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date, _ := time.ParseInLocation("2006-01-02", req.Date, h.loc)
	created, err := h.repo.Add(r.Context(), date, req.Name)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday added", holiday.NewHolidayResponse(created))
}

// Remove implements HolidayHandler.
func (h *holidayHandlerImpl) Remove(w http.ResponseWriter, r *http.Request) {
	dateStr := chi.URLParam(r, "date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
	if err != nil {
		response.BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	if err := h.repo.Remove(r.Context(), date); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday removed", nil)
}
