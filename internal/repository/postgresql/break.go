package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const breakColumns = `
	id, attendance_id,
	to_char(start_time, 'HH24:MI:SS'),
	to_char(end_time, 'HH24:MI:SS'),
	created_at
`

type breakRepository struct {
	db *database.DB
}

func NewBreakRepository(db *database.DB) attendance.BreakRepository {
	return &breakRepository{db: db}
}

func scanBreak(row pgx.Row) (attendance.Break, error) {
	var b attendance.Break
	err := row.Scan(&b.ID, &b.AttendanceID, &b.StartTime, &b.EndTime, &b.CreatedAt)
	return b, err
}

// Create implements attendance.BreakRepository.
func (r *breakRepository) Create(ctx context.Context, brk attendance.Break) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO breaks (attendance_id, start_time, end_time)
		VALUES ($1, $2::time, $3::time)
		RETURNING ` + breakColumns

	created, err := scanBreak(q.QueryRow(ctx, query, brk.AttendanceID, brk.StartTime, brk.EndTime))
	if err != nil {
		return attendance.Break{}, fmt.Errorf("failed to create break: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.BreakRepository.
func (r *breakRepository) GetByID(ctx context.Context, id string) (attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + breakColumns + ` FROM breaks WHERE id = $1`

	brk, err := scanBreak(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Break{}, attendance.ErrBreakNotFound
		}
		return attendance.Break{}, fmt.Errorf("failed to get break by id %s: %w", id, err)
	}
	return brk, nil
}

// ListByAttendanceID implements attendance.BreakRepository.
func (r *breakRepository) ListByAttendanceID(ctx context.Context, attendanceID string) ([]attendance.Break, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + breakColumns + `
		FROM breaks
		WHERE attendance_id = $1
		ORDER BY start_time ASC, id ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	var breaks []attendance.Break
	for rows.Next() {
		brk, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		breaks = append(breaks, brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breaks: %w", err)
	}
	return breaks, nil
}

// ListByAttendanceIDs implements attendance.BreakRepository.
func (r *breakRepository) ListByAttendanceIDs(ctx context.Context, attendanceIDs []string) (map[string][]attendance.Break, error) {
	grouped := make(map[string][]attendance.Break)
	if len(attendanceIDs) == 0 {
		return grouped, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + breakColumns + `
		FROM breaks
		WHERE attendance_id = ANY($1::uuid[])
		ORDER BY attendance_id, start_time ASC, id ASC
	`

	rows, err := q.Query(ctx, query, attendanceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		brk, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break: %w", err)
		}
		grouped[brk.AttendanceID] = append(grouped[brk.AttendanceID], brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate breaks: %w", err)
	}
	return grouped, nil
}

// Update implements attendance.BreakRepository.
func (r *breakRepository) Update(ctx context.Context, brk attendance.Break) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE breaks
		SET start_time = $1::time, end_time = $2::time
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, brk.StartTime, brk.EndTime, brk.ID)
	if err != nil {
		return fmt.Errorf("failed to update break %s: %w", brk.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBreakNotFound
	}
	return nil
}

// Delete implements attendance.BreakRepository.
func (r *breakRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM breaks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete break %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrBreakNotFound
	}
	return nil
}

// DeleteByAttendanceID implements attendance.BreakRepository.
func (r *breakRepository) DeleteByAttendanceID(ctx context.Context, attendanceID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM breaks WHERE attendance_id = $1`, attendanceID); err != nil {
		return fmt.Errorf("failed to delete breaks of attendance %s: %w", attendanceID, err)
	}
	return nil
}
