package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// GenerateDailyReport merges each employee's rows for one date
	GenerateDailyReport(ctx context.Context, req DailyReportRequest) (DailyReport, error)

	// GenerateMonthlyReport lists per-day hours for every employee in a month
	GenerateMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// ListReportDates returns the dates of a month that carry attendance
	ListReportDates(ctx context.Context, req ReportDatesRequest) (ReportDates, error)
}
