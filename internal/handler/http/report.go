package http

import (
	"net/http"
	"strconv"

	"github.com/etrackhq/etrack-backend-go/internal/domain/report"
	"github.com/etrackhq/etrack-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Weekly(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// Weekly implements ReportHandler.
func (h *reportHandlerImpl) Weekly(w http.ResponseWriter, r *http.Request) {
	req := report.WeeklyReportRequest{
		Year:  queryInt(r, "year"),
		Month: queryInt(r, "month"),
		Week:  queryInt(r, "week"),
	}

	result, err := h.reportService.WeeklyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Monthly implements ReportHandler.
func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	req := report.MonthlyReportRequest{
		Year:  queryInt(r, "year"),
		Month: queryInt(r, "month"),
	}

	result, err := h.reportService.MonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// queryInt returns the query parameter as an int, zero when absent or
// malformed. Range validation happens in the request DTO.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
