package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
)

const (
	JobEnsureDailyAttendanceRows = "ensure_daily_attendance_rows"
	JobPurgeRevokedTokens        = "purge_revoked_tokens"
)

// TokenPurger is the part of jwt.Service the jobs need.
type TokenPurger interface {
	PurgeRevoked() int
}

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	purger            TokenPurger
	interval          time.Duration
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, purger TokenPurger, interval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		purger:            purger,
		interval:          interval,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(JobEnsureDailyAttendanceRows, j.interval, j.EnsureDailyAttendanceRows)
	scheduler.AddJob(JobPurgeRevokedTokens, j.interval, j.PurgeRevokedTokens)
}

// EnsureDailyAttendanceRows gives every employee a row for today so the
// dashboard lists employees who have not clocked in yet.
func (j *AttendanceJobs) EnsureDailyAttendanceRows(ctx context.Context) error {
	y, m, d := j.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	created, err := j.attendanceService.EnsureDailyRows(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to ensure daily attendance rows: %w", err)
	}
	slog.Debug("Cron: daily attendance rows ensured", "date", today.Format("2006-01-02"), "created", created)
	return nil
}

func (j *AttendanceJobs) PurgeRevokedTokens(ctx context.Context) error {
	if purged := j.purger.PurgeRevoked(); purged > 0 {
		slog.Info("Cron: purged expired revoked tokens", "count", purged)
	}
	return nil
}
