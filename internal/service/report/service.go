package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/employee"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/report"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/timeutil"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	aggregator     *Aggregator
	now            func() time.Time
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	aggregator *Aggregator,
) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		aggregator:     aggregator,
		now:            time.Now,
	}
}

// GenerateDailyReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateDailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyReport, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReport{}, err
	}

	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to parse date: %w", err)
	}

	dateStr := timeutil.FormatDate(date)
	dir, records, err := s.load(ctx, attendance.AttendanceFilter{Date: &dateStr})
	if err != nil {
		return report.DailyReport{}, err
	}

	rows := s.aggregator.GroupDaily(date, records, dir)

	filtered := make([]report.DailyRecord, 0, len(rows))
	for _, r := range rows {
		if matchesSearch(r.EmployeeName, req.Search) {
			filtered = append(filtered, r)
		}
	}

	return report.DailyReport{
		Date:        dateStr,
		GeneratedAt: s.now().Format(time.RFC3339),
		Records:     filtered,
	}, nil
}

// GenerateMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) GenerateMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	month, err := time.Parse(timeutil.MonthLayout, req.Month)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to parse month: %w", err)
	}

	periodStart, periodEnd := timeutil.MonthBounds(month)
	startStr := timeutil.FormatDate(periodStart)
	endStr := timeutil.FormatDate(periodEnd)

	dir, records, err := s.load(ctx, attendance.AttendanceFilter{StartDate: &startStr, EndDate: &endStr})
	if err != nil {
		return report.MonthlyReport{}, err
	}

	rows := s.aggregator.GroupMonthly(records, dir)

	filtered := make([]report.MonthlyRow, 0, len(rows))
	for _, r := range rows {
		if matchesSearch(r.EmployeeName, req.Search) {
			filtered = append(filtered, r)
		}
	}

	return report.MonthlyReport{
		Month:       month.Format(timeutil.MonthLayout),
		PeriodStart: startStr,
		PeriodEnd:   endStr,
		GeneratedAt: s.now().Format(time.RFC3339),
		Rows:        filtered,
	}, nil
}

// ListReportDates implements report.ReportService.
func (s *ReportServiceImpl) ListReportDates(ctx context.Context, req report.ReportDatesRequest) (report.ReportDates, error) {
	if err := req.Validate(); err != nil {
		return report.ReportDates{}, err
	}

	month, err := time.Parse(timeutil.MonthLayout, req.Month)
	if err != nil {
		return report.ReportDates{}, fmt.Errorf("failed to parse month: %w", err)
	}
	from, to := timeutil.MonthBounds(month)

	dates, err := s.attendanceRepo.ListDates(ctx, from, to)
	if err != nil {
		return report.ReportDates{}, fmt.Errorf("failed to list attendance dates: %w", err)
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, timeutil.FormatDate(d))
	}

	return report.ReportDates{
		Month: month.Format(timeutil.MonthLayout),
		Dates: out,
	}, nil
}

// load fetches the employee directory and the filtered attendance rows
// concurrently, then attaches breaks to the rows.
func (s *ReportServiceImpl) load(ctx context.Context, filter attendance.AttendanceFilter) (*Directory, []attendance.Attendance, error) {
	var (
		employees []employee.Employee
		records   []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	breaksByID, err := s.breakRepo.ListByAttendanceIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	for i := range records {
		records[i].Breaks = breaksByID[records[i].ID]
	}

	return NewDirectory(employees), records, nil
}

func matchesSearch(name, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}
