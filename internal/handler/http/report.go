package http

import (
	"net/http"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/report"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/handler/http/response"
)

type ReportHandler interface {
	// GetDailyReport handles GET /reports/daily?date=YYYY-MM-DD&search=
	GetDailyReport(w http.ResponseWriter, r *http.Request)

	// GetMonthlyReport handles GET /reports/monthly?month=YYYY-MM&search=
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)

	// GetReportDates handles GET /reports/dates?month=YYYY-MM
	GetReportDates(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func (h *reportHandlerImpl) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	req := report.DailyReportRequest{
		Date:   r.URL.Query().Get("date"),
		Search: r.URL.Query().Get("search"),
	}

	result, err := h.reportService.GenerateDailyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req := report.MonthlyReportRequest{
		Month:  r.URL.Query().Get("month"),
		Search: r.URL.Query().Get("search"),
	}

	result, err := h.reportService.GenerateMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) GetReportDates(w http.ResponseWriter, r *http.Request) {
	req := report.ReportDatesRequest{
		Month: r.URL.Query().Get("month"),
	}

	result, err := h.reportService.ListReportDates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
