package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/employee"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/database"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/timeutil"
)

const unknownEmployeeName = "Unknown"

type AttendanceServiceImpl struct {
	txManager      database.TxManager
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
	employeeRepo   employee.EmployeeRepository
	calculator     *HoursCalculator
	now            func() time.Time
}

func NewAttendanceService(
	txManager database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	calculator *HoursCalculator,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txManager:      txManager,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
		employeeRepo:   employeeRepo,
		calculator:     calculator,
		now:            time.Now,
	}
}

// CreateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date := s.today()
	if req.Date != "" {
		parsed, err := timeutil.ParseDate(req.Date)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
		}
		date = parsed
	}

	overTime := ""
	if req.OverTime != nil {
		overTime = *req.OverTime
	}

	breaks := make([]attendance.Break, 0, len(req.Breaks))
	for _, b := range req.Breaks {
		breaks = append(breaks, attendance.Break{StartTime: b.StartTime, EndTime: b.EndTime})
	}

	// submitted breaks go through the ordered break checks instead of the
	// stranded-break check
	if err := ValidateAttendanceTimes(req.TimeIn, req.TimeOut, overTime, nil); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	for i, b := range breaks {
		if err := ValidateBreak(b.StartTime, b.EndTime, &req.TimeIn, &req.TimeOut, breaks[:i], ""); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	timeIn, err := storeClock(req.TimeIn)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	timeOut, err := storeClock(req.TimeOut)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	overTimeStored, err := storeClock(overTime)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var attendanceID string
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		existing, err := s.attendanceRepo.ListByEmployeeAndDate(txCtx, req.EmployeeID, date)
		if err != nil {
			return fmt.Errorf("failed to list attendance for date: %w", err)
		}

		record := attendance.Attendance{
			EmployeeID: req.EmployeeID,
			Date:       date,
			TimeIn:     timeIn,
			TimeOut:    timeOut,
			OverTime:   overTimeStored,
			Status:     attendance.StatusPresent,
		}

		// a seeded absence-pending row is filled in rather than duplicated
		adopted := false
		for _, row := range existing {
			if row.IsPending() {
				record.ID = row.ID
				if err := s.attendanceRepo.Update(txCtx, record); err != nil {
					return fmt.Errorf("failed to update pending attendance: %w", err)
				}
				adopted = true
				break
			}
		}
		if !adopted {
			created, err := s.attendanceRepo.Create(txCtx, record)
			if err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}
			record.ID = created.ID
		}
		attendanceID = record.ID

		for _, b := range breaks {
			start, err := timeutil.ToStoreClock(b.StartTime)
			if err != nil {
				return attendance.ErrInvalidTimeFormat
			}
			end, err := timeutil.ToStoreClock(b.EndTime)
			if err != nil {
				return attendance.ErrInvalidTimeFormat
			}
			if _, err := s.breakRepo.Create(txCtx, attendance.Break{
				AttendanceID: attendanceID,
				StartTime:    start,
				EndTime:      end,
			}); err != nil {
				return fmt.Errorf("failed to create break: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance recorded", "attendance_id", attendanceID, "employee_id", req.EmployeeID, "date", timeutil.FormatDate(date))

	return s.GetAttendance(ctx, attendanceID)
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	breaks, err := s.breakRepo.ListByAttendanceID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}
	record.Breaks = breaks

	return s.toResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	breaksByID, err := s.breakRepo.ListByAttendanceIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		r.Breaks = breaksByID[r.ID]
		responses = append(responses, s.toResponse(r))
	}
	return responses, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.getRecord(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	timeIn := mergeClock(req.TimeIn, record.TimeIn)
	timeOut := mergeClock(req.TimeOut, record.TimeOut)
	overTime := mergeClock(req.OverTime, record.OverTime)

	markAbsent := req.Status != nil && attendance.Status(*req.Status) == attendance.StatusAbsent
	if markAbsent {
		record.Status = attendance.StatusAbsent
	} else {
		breaks, err := s.breakRepo.ListByAttendanceID(ctx, record.ID)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to list breaks: %w", err)
		}
		if err := ValidateAttendanceTimes(timeIn, timeOut, overTime, breaks); err != nil {
			return attendance.AttendanceResponse{}, err
		}
		record.Status = attendance.StatusPresent
	}

	if record.TimeIn, err = storeClock(timeIn); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record.TimeOut, err = storeClock(timeOut); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if record.OverTime, err = storeClock(overTime); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.GetAttendance(ctx, record.ID)
}

// MarkAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.AttendanceResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var attendanceID string
	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		rows, err := s.attendanceRepo.ListByEmployeeAndDate(txCtx, req.EmployeeID, date)
		if err != nil {
			return fmt.Errorf("failed to list attendance for date: %w", err)
		}

		if len(rows) == 0 {
			created, err := s.attendanceRepo.Create(txCtx, attendance.Attendance{
				EmployeeID: req.EmployeeID,
				Date:       date,
				Status:     attendance.StatusAbsent,
			})
			if err != nil {
				return fmt.Errorf("failed to create absent attendance: %w", err)
			}
			attendanceID = created.ID
			return nil
		}

		for _, row := range rows {
			row.Status = attendance.StatusAbsent
			if err := s.attendanceRepo.Update(txCtx, row); err != nil {
				return fmt.Errorf("failed to mark attendance absent: %w", err)
			}
		}
		attendanceID = rows[0].ID
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Employee marked absent", "employee_id", req.EmployeeID, "date", req.Date)

	return s.GetAttendance(ctx, attendanceID)
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	return s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.getRecord(txCtx, id); err != nil {
			return err
		}
		if err := s.breakRepo.DeleteByAttendanceID(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete breaks: %w", err)
		}
		if err := s.attendanceRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to delete attendance: %w", err)
		}
		return nil
	})
}

// ListBreaks implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListBreaks(ctx context.Context, attendanceID string) ([]attendance.BreakResponse, error) {
	if _, err := s.getRecord(ctx, attendanceID); err != nil {
		return nil, err
	}

	breaks, err := s.breakRepo.ListByAttendanceID(ctx, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	return toBreakResponses(breaks), nil
}

// AddBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AddBreak(ctx context.Context, req attendance.AddBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	record, err := s.getRecord(ctx, req.AttendanceID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	existing, err := s.breakRepo.ListByAttendanceID(ctx, record.ID)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	if err := ValidateBreak(req.StartTime, req.EndTime, record.TimeIn, record.TimeOut, existing, ""); err != nil {
		return attendance.BreakResponse{}, err
	}

	brk, err := newStoreBreak(record.ID, req.StartTime, req.EndTime)
	if err != nil {
		return attendance.BreakResponse{}, err
	}

	created, err := s.breakRepo.Create(ctx, brk)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to create break: %w", err)
	}
	return toBreakResponse(created), nil
}

// UpdateBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateBreak(ctx context.Context, req attendance.UpdateBreakRequest) (attendance.BreakResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BreakResponse{}, err
	}

	record, err := s.getRecord(ctx, req.AttendanceID)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	if _, err := s.getOwnedBreak(ctx, record.ID, req.BreakID); err != nil {
		return attendance.BreakResponse{}, err
	}

	existing, err := s.breakRepo.ListByAttendanceID(ctx, record.ID)
	if err != nil {
		return attendance.BreakResponse{}, fmt.Errorf("failed to list breaks: %w", err)
	}

	if err := ValidateBreak(req.StartTime, req.EndTime, record.TimeIn, record.TimeOut, existing, req.BreakID); err != nil {
		return attendance.BreakResponse{}, err
	}

	brk, err := newStoreBreak(record.ID, req.StartTime, req.EndTime)
	if err != nil {
		return attendance.BreakResponse{}, err
	}
	brk.ID = req.BreakID

	if err := s.breakRepo.Update(ctx, brk); err != nil {
		if errors.Is(err, attendance.ErrBreakNotFound) {
			return attendance.BreakResponse{}, attendance.ErrBreakNotFound
		}
		return attendance.BreakResponse{}, fmt.Errorf("failed to update break: %w", err)
	}
	return toBreakResponse(brk), nil
}

// DeleteBreak implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteBreak(ctx context.Context, attendanceID string, breakID string) error {
	if _, err := s.getOwnedBreak(ctx, attendanceID, breakID); err != nil {
		return err
	}
	if err := s.breakRepo.Delete(ctx, breakID); err != nil {
		if errors.Is(err, attendance.ErrBreakNotFound) {
			return attendance.ErrBreakNotFound
		}
		return fmt.Errorf("failed to delete break: %w", err)
	}
	return nil
}

// EnsureDailyRows implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EnsureDailyRows(ctx context.Context, date time.Time) (int64, error) {
	created, err := s.attendanceRepo.CreateMissingForDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to seed daily attendance rows: %w", err)
	}
	if created > 0 {
		slog.Info("Seeded absence-pending attendance rows", "date", timeutil.FormatDate(date), "count", created)
	}
	return created, nil
}

func (s *AttendanceServiceImpl) getRecord(ctx context.Context, id string) (attendance.Attendance, error) {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// getOwnedBreak treats a break that belongs to another attendance record as
// missing.
func (s *AttendanceServiceImpl) getOwnedBreak(ctx context.Context, attendanceID, breakID string) (attendance.Break, error) {
	brk, err := s.breakRepo.GetByID(ctx, breakID)
	if err != nil {
		if errors.Is(err, attendance.ErrBreakNotFound) {
			return attendance.Break{}, attendance.ErrBreakNotFound
		}
		return attendance.Break{}, fmt.Errorf("failed to get break: %w", err)
	}
	if brk.AttendanceID != attendanceID {
		return attendance.Break{}, attendance.ErrBreakNotFound
	}
	return brk, nil
}

func (s *AttendanceServiceImpl) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *AttendanceServiceImpl) toResponse(a attendance.Attendance) attendance.AttendanceResponse {
	name := unknownEmployeeName
	if a.EmployeeName != nil && *a.EmployeeName != "" {
		name = *a.EmployeeName
	}

	return attendance.AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: name,
		Date:         timeutil.FormatDate(a.Date),
		TimeIn:       a.TimeIn,
		TimeOut:      a.TimeOut,
		OverTime:     a.OverTime,
		Status:       string(a.Status),
		Breaks:       toBreakResponses(a.Breaks),
		BreakMinutes: TotalBreakMinutes(a.Breaks),
		Hours:        s.calculator.ComputeForRecord(a),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

func toBreakResponse(b attendance.Break) attendance.BreakResponse {
	return attendance.BreakResponse{
		ID:           b.ID,
		AttendanceID: b.AttendanceID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
	}
}

func toBreakResponses(breaks []attendance.Break) []attendance.BreakResponse {
	responses := make([]attendance.BreakResponse, 0, len(breaks))
	for _, b := range breaks {
		responses = append(responses, toBreakResponse(b))
	}
	return responses
}

func newStoreBreak(attendanceID, start, end string) (attendance.Break, error) {
	startStored, err := timeutil.ToStoreClock(start)
	if err != nil {
		return attendance.Break{}, attendance.ErrInvalidTimeFormat
	}
	endStored, err := timeutil.ToStoreClock(end)
	if err != nil {
		return attendance.Break{}, attendance.ErrInvalidTimeFormat
	}
	return attendance.Break{
		AttendanceID: attendanceID,
		StartTime:    startStored,
		EndTime:      endStored,
	}, nil
}

// storeClock maps an empty value to NULL.
func storeClock(raw string) (*string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	stored, err := timeutil.ToStoreClock(raw)
	if err != nil {
		return nil, attendance.ErrInvalidTimeFormat
	}
	return &stored, nil
}

// mergeClock prefers the requested value; a nil request keeps the stored one.
func mergeClock(requested, current *string) string {
	if requested != nil {
		return *requested
	}
	if current != nil {
		return *current
	}
	return ""
}
