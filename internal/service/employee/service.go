package employee

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
)

type EmployeeServiceImpl struct {
	txManager      database.TxManager
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	breakRepo      attendance.BreakRepository
}

func NewEmployeeService(
	txManager database.TxManager,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	breakRepo attendance.BreakRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		txManager:      txManager,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		breakRepo:      breakRepo,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByName(ctx, req.FirstName, req.LastName, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee name: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeExists
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID)

	return toResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.getEmployee(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		if search != "" && !strings.Contains(strings.ToLower(e.FullName()), search) {
			continue
		}
		responses = append(responses, toResponse(e))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.getEmployee(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByName(ctx, req.FirstName, req.LastName, &req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee name: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeExists
	}

	emp.FirstName = req.FirstName
	emp.LastName = req.LastName
	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return toResponse(emp), nil
}

// DeleteEmployee implements employee.EmployeeService. Breaks go before
// their attendance row and attendance before the employee, all in one
// transaction.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	var removed int
	err := s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		if _, err := s.getEmployee(txCtx, id); err != nil {
			return err
		}

		records, err := s.attendanceRepo.List(txCtx, attendance.AttendanceFilter{EmployeeID: &id})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}

		for _, r := range records {
			if err := s.breakRepo.DeleteByAttendanceID(txCtx, r.ID); err != nil {
				return fmt.Errorf("failed to delete breaks of attendance %s: %w", r.ID, err)
			}
			if err := s.attendanceRepo.Delete(txCtx, r.ID); err != nil {
				return fmt.Errorf("failed to delete attendance %s: %w", r.ID, err)
			}
		}
		removed = len(records)

		if err := s.employeeRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.ErrEmployeeNotFound
			}
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", id, "attendance_removed", removed)
	return nil
}

func (s *EmployeeServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func toResponse(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		FullName:  e.FullName(),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
