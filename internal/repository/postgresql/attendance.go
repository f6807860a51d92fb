package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// attendanceColumns reads TIME columns back as HH:MM:SS text.
const attendanceColumns = `
	a.id, a.employee_id, a.date,
	to_char(a.time_in, 'HH24:MI:SS'),
	to_char(a.time_out, 'HH24:MI:SS'),
	to_char(a.over_time, 'HH24:MI:SS'),
	COALESCE(a.status, ''),
	a.created_at, a.updated_at,
	CASE WHEN e.id IS NULL THEN NULL ELSE TRIM(e.first_name || ' ' || e.last_name) END
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		att    attendance.Attendance
		status string
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date,
		&att.TimeIn, &att.TimeOut, &att.OverTime,
		&status,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Status = attendance.ParseStatus(status)
	return att, nil
}

func collectAttendance(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	var out []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return out, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (employee_id, date, time_in, time_out, over_time, status)
		VALUES ($1, $2::date, $3::time, $4::time, $5::time, $6)
		RETURNING id, created_at, updated_at
	`

	created := newAttendance
	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID, newAttendance.Date,
		newAttendance.TimeIn, newAttendance.TimeOut, newAttendance.OverTime,
		string(newAttendance.Status),
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employee e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id %s: %w", id, err)
	}
	return att, nil
}

// ListByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance a
		LEFT JOIN employee e ON e.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2::date
		ORDER BY a.created_at ASC, a.id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for employee %s: %w", employeeID, err)
	}
	return collectAttendance(rows)
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	var (
		conditions []string
		args       []interface{}
	)
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Date != nil {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d::date", argIdx))
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}
	if filter.Status != nil {
		// rows with no status count as present
		if attendance.Status(*filter.Status) == attendance.StatusAbsent {
			conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		} else {
			conditions = append(conditions, fmt.Sprintf("COALESCE(a.status, '') <> $%d", argIdx))
		}
		args = append(args, string(attendance.StatusAbsent))
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s
		FROM attendance a
		LEFT JOIN employee e ON e.id = a.employee_id
		%s
		ORDER BY a.date ASC, a.created_at ASC, a.id ASC
	`, attendanceColumns, where)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return collectAttendance(rows)
}

// ListDates implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT DISTINCT date
		FROM attendance
		WHERE date BETWEEN $1::date AND $2::date
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan attendance date: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance dates: %w", err)
	}
	return dates, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET time_in = $1::time, time_out = $2::time, over_time = $3::time,
			status = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, att.TimeIn, att.TimeOut, att.OverTime, string(att.Status), att.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance %s: %w", att.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// CreateMissingForDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateMissingForDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (employee_id, date)
		SELECT e.id, $1::date
		FROM employee e
		WHERE NOT EXISTS (
			SELECT 1 FROM attendance a
			WHERE a.employee_id = e.id AND a.date = $1::date
		)
	`

	tag, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to create missing attendance rows: %w", err)
	}
	return tag.RowsAffected(), nil
}
