package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/employee"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = "a0000000-0000-0000-0000-000000000001"
	bobID   = "b0000000-0000-0000-0000-000000000002"
)

type serviceFixture struct {
	svc         *AttendanceServiceImpl
	tx          *fakeTxManager
	attendances *fakeAttendanceRepo
	breaks      *fakeBreakRepo
}

func newServiceFixture() serviceFixture {
	tx := &fakeTxManager{}
	attendances := newFakeAttendanceRepo()
	attendances.names[aliceID] = "Alice Smith"
	attendances.names[bobID] = "Bob Jones"
	breaks := newFakeBreakRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		aliceID: {ID: aliceID, FirstName: "Alice", LastName: "Smith"},
		bobID:   {ID: bobID, FirstName: "Bob", LastName: "Jones"},
	}}

	svc := NewAttendanceService(tx, attendances, breaks, employees, NewHoursCalculator(9, 30)).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }

	return serviceFixture{svc: svc, tx: tx, attendances: attendances, breaks: breaks}
}

func TestCreateAttendance(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.CreateAttendance(ctx, attendance.CreateAttendanceRequest{
		EmployeeID: aliceID,
		Date:       "2024-03-14",
		TimeIn:     "9:00",
		TimeOut:    "18:00",
		Breaks: []attendance.BreakInput{
			{StartTime: "12:00", EndTime: "12:30"},
			{StartTime: "15:00", EndTime: "15:15"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-14", resp.Date)
	assert.Equal(t, "Alice Smith", resp.EmployeeName)
	assert.Equal(t, "09:00:00", *resp.TimeIn)
	assert.Equal(t, "18:00:00", *resp.TimeOut)
	assert.Nil(t, resp.OverTime)
	assert.Equal(t, "present", resp.Status)
	assert.Len(t, resp.Breaks, 2)
	assert.Equal(t, 45, resp.BreakMinutes)
	assert.Equal(t, attendance.Hours{RegularHours: 9, OvertimeHours: 0, TotalHoursWorked: 8.75}, resp.Hours)
	assert.Equal(t, 1, f.tx.calls)
}

func TestCreateAttendance_DefaultsToToday(t *testing.T) {
	f := newServiceFixture()

	resp, err := f.svc.CreateAttendance(context.Background(), attendance.CreateAttendanceRequest{
		EmployeeID: aliceID,
		TimeIn:     "09:00",
		TimeOut:    "17:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", resp.Date)
}

func TestCreateAttendance_AdoptsPendingRow(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	created, err := f.svc.EnsureDailyRows(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(2), created)

	resp, err := f.svc.CreateAttendance(ctx, attendance.CreateAttendanceRequest{
		EmployeeID: aliceID,
		Date:       "2024-03-15",
		TimeIn:     "09:00",
		TimeOut:    "17:00",
	})
	require.NoError(t, err)

	rows, err := f.attendances.ListByEmployeeAndDate(ctx, aliceID, day)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, rows[0].ID, resp.ID)

	// seeding again is a no-op
	created, err = f.svc.EnsureDailyRows(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(0), created)
}

func TestCreateAttendance_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		req     attendance.CreateAttendanceRequest
		wantErr error
	}{
		{
			name:    "missing times",
			req:     attendance.CreateAttendanceRequest{EmployeeID: aliceID, TimeIn: "09:00"},
			wantErr: attendance.ErrTimeRequired,
		},
		{
			name:    "time out before time in",
			req:     attendance.CreateAttendanceRequest{EmployeeID: aliceID, TimeIn: "18:00", TimeOut: "09:00"},
			wantErr: attendance.ErrTimeOutBeforeTimeIn,
		},
		{
			name:    "overtime not after time out",
			req:     attendance.CreateAttendanceRequest{EmployeeID: aliceID, TimeIn: "09:00", TimeOut: "18:00", OverTime: strPtr("17:00")},
			wantErr: attendance.ErrOvertimeBeforeTimeOut,
		},
		{
			name: "break outside window",
			req: attendance.CreateAttendanceRequest{EmployeeID: aliceID, TimeIn: "09:00", TimeOut: "18:00",
				Breaks: []attendance.BreakInput{{StartTime: "08:00", EndTime: "08:30"}}},
			wantErr: attendance.ErrBreakOutsideWindow,
		},
		{
			name: "break missing start time",
			req: attendance.CreateAttendanceRequest{EmployeeID: aliceID, TimeIn: "09:00", TimeOut: "18:00",
				Breaks: []attendance.BreakInput{{StartTime: "", EndTime: "12:30"}}},
			wantErr: attendance.ErrBreakTimeRequired,
		},
		{
			name: "reversed break before window",
			req: attendance.CreateAttendanceRequest{EmployeeID: aliceID, TimeIn: "09:00", TimeOut: "18:00",
				Breaks: []attendance.BreakInput{{StartTime: "08:00", EndTime: "07:00"}}},
			wantErr: attendance.ErrBreakInvalidRange,
		},
		{
			name: "overlapping breaks",
			req: attendance.CreateAttendanceRequest{EmployeeID: aliceID, TimeIn: "09:00", TimeOut: "18:00",
				Breaks: []attendance.BreakInput{{StartTime: "12:00", EndTime: "12:30"}, {StartTime: "12:15", EndTime: "12:45"}}},
			wantErr: attendance.ErrBreakOverlap,
		},
		{
			name:    "unknown employee",
			req:     attendance.CreateAttendanceRequest{EmployeeID: "c0000000-0000-0000-0000-000000000003", TimeIn: "09:00", TimeOut: "18:00"},
			wantErr: employee.ErrEmployeeNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newServiceFixture()
			_, err := f.svc.CreateAttendance(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, f.attendances.rows)
			assert.Empty(t, f.breaks.breaks)
		})
	}
}

func TestCreateAttendance_InvalidRequest(t *testing.T) {
	f := newServiceFixture()
	_, err := f.svc.CreateAttendance(context.Background(), attendance.CreateAttendanceRequest{
		EmployeeID: "not-a-uuid",
		TimeIn:     "09:00",
		TimeOut:    "18:00",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_id")
}

func createDay(t *testing.T, f serviceFixture, employeeID, date, in, out string) attendance.AttendanceResponse {
	t.Helper()
	resp, err := f.svc.CreateAttendance(context.Background(), attendance.CreateAttendanceRequest{
		EmployeeID: employeeID,
		Date:       date,
		TimeIn:     in,
		TimeOut:    out,
	})
	require.NoError(t, err)
	return resp
}

func TestUpdateAttendance(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	rec := createDay(t, f, aliceID, "2024-03-14", "09:00", "18:00")

	resp, err := f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID:       rec.ID,
		TimeOut:  strPtr("20:00"),
		OverTime: strPtr("21:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", *resp.TimeIn)
	assert.Equal(t, "20:00:00", *resp.TimeOut)
	assert.Equal(t, "21:00:00", *resp.OverTime)
	assert.Equal(t, attendance.Hours{RegularHours: 9, OvertimeHours: 2, TotalHoursWorked: 11}, resp.Hours)

	// clearing overtime stores NULL
	resp, err = f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: rec.ID, OverTime: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, resp.OverTime)
}

func TestUpdateAttendance_RejectsWindowThatDropsBreaks(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	rec := createDay(t, f, aliceID, "2024-03-14", "09:00", "18:00")
	_, err := f.svc.AddBreak(ctx, attendance.AddBreakRequest{AttendanceID: rec.ID, StartTime: "12:00", EndTime: "12:30"})
	require.NoError(t, err)

	_, err = f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: rec.ID, TimeIn: strPtr("13:00")})
	assert.ErrorIs(t, err, attendance.ErrBreaksOutsideWindow)
}

func TestUpdateAttendance_AbsentSkipsTimeChecksAndZeroesHours(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	rec := createDay(t, f, aliceID, "2024-03-14", "09:00", "18:00")

	resp, err := f.svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID:      rec.ID,
		TimeOut: strPtr("08:00"),
		Status:  strPtr("absent"),
	})
	require.NoError(t, err)
	assert.Equal(t, "absent", resp.Status)
	assert.Equal(t, attendance.Hours{}, resp.Hours)
}

func TestUpdateAttendance_NotFound(t *testing.T) {
	f := newServiceFixture()
	_, err := f.svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:     "d0000000-0000-0000-0000-000000000004",
		TimeIn: strPtr("09:00"),
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestMarkAbsent(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	resp, err := f.svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{EmployeeID: bobID, Date: "2024-03-14"})
	require.NoError(t, err)
	assert.Equal(t, "absent", resp.Status)
	assert.Equal(t, "Bob Jones", resp.EmployeeName)
	assert.Nil(t, resp.TimeIn)

	rec := createDay(t, f, aliceID, "2024-03-14", "09:00", "18:00")
	resp, err = f.svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{EmployeeID: aliceID, Date: "2024-03-14"})
	require.NoError(t, err)
	assert.Equal(t, rec.ID, resp.ID)
	assert.Equal(t, "absent", resp.Status)
	assert.Equal(t, attendance.Hours{}, resp.Hours)
	assert.Len(t, f.attendances.rows, 2)
}

func TestDeleteAttendance_RemovesBreaksFirst(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	rec := createDay(t, f, aliceID, "2024-03-14", "09:00", "18:00")
	_, err := f.svc.AddBreak(ctx, attendance.AddBreakRequest{AttendanceID: rec.ID, StartTime: "12:00", EndTime: "12:30"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAttendance(ctx, rec.ID))
	assert.Empty(t, f.attendances.rows)
	assert.Empty(t, f.breaks.breaks)

	assert.ErrorIs(t, f.svc.DeleteAttendance(ctx, rec.ID), attendance.ErrAttendanceNotFound)
}

func TestBreakLifecycle(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	rec := createDay(t, f, aliceID, "2024-03-14", "09:00", "18:00")

	lunch, err := f.svc.AddBreak(ctx, attendance.AddBreakRequest{AttendanceID: rec.ID, StartTime: "12:00", EndTime: "12:30"})
	require.NoError(t, err)
	assert.Equal(t, "12:00:00", lunch.StartTime)

	_, err = f.svc.AddBreak(ctx, attendance.AddBreakRequest{AttendanceID: rec.ID, StartTime: "12:15", EndTime: "12:45"})
	assert.ErrorIs(t, err, attendance.ErrBreakOverlap)

	_, err = f.svc.AddBreak(ctx, attendance.AddBreakRequest{AttendanceID: rec.ID, StartTime: "12:30", EndTime: "12:45"})
	require.NoError(t, err)

	// extending lunch into the next break overlaps, shrinking it does not
	_, err = f.svc.UpdateBreak(ctx, attendance.UpdateBreakRequest{AttendanceID: rec.ID, BreakID: lunch.ID, StartTime: "12:00", EndTime: "12:40"})
	assert.ErrorIs(t, err, attendance.ErrBreakOverlap)
	updated, err := f.svc.UpdateBreak(ctx, attendance.UpdateBreakRequest{AttendanceID: rec.ID, BreakID: lunch.ID, StartTime: "12:05", EndTime: "12:30"})
	require.NoError(t, err)
	assert.Equal(t, "12:05:00", updated.StartTime)

	breaks, err := f.svc.ListBreaks(ctx, rec.ID)
	require.NoError(t, err)
	assert.Len(t, breaks, 2)

	require.NoError(t, f.svc.DeleteBreak(ctx, rec.ID, lunch.ID))
	assert.ErrorIs(t, f.svc.DeleteBreak(ctx, rec.ID, lunch.ID), attendance.ErrBreakNotFound)
}

func TestBreak_WrongAttendanceIsNotFound(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	first := createDay(t, f, aliceID, "2024-03-14", "09:00", "18:00")
	second := createDay(t, f, bobID, "2024-03-14", "09:00", "18:00")

	brk, err := f.svc.AddBreak(ctx, attendance.AddBreakRequest{AttendanceID: first.ID, StartTime: "12:00", EndTime: "12:30"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteBreak(ctx, second.ID, brk.ID), attendance.ErrBreakNotFound)
	_, err = f.svc.UpdateBreak(ctx, attendance.UpdateBreakRequest{AttendanceID: second.ID, BreakID: brk.ID, StartTime: "13:00", EndTime: "13:30"})
	assert.ErrorIs(t, err, attendance.ErrBreakNotFound)
}

func TestAddBreak_RequiresWindow(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	absent, err := f.svc.MarkAbsent(ctx, attendance.MarkAbsentRequest{EmployeeID: bobID, Date: "2024-03-14"})
	require.NoError(t, err)

	_, err = f.svc.AddBreak(ctx, attendance.AddBreakRequest{AttendanceID: absent.ID, StartTime: "12:00", EndTime: "12:30"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceWindowMissing)
}

func TestListAttendance(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	rec := createDay(t, f, aliceID, "2024-03-14", "09:00", "18:00")
	createDay(t, f, bobID, "2024-03-14", "10:00", "18:00")
	_, err := f.svc.AddBreak(ctx, attendance.AddBreakRequest{AttendanceID: rec.ID, StartTime: "12:00", EndTime: "13:00"})
	require.NoError(t, err)

	employeeID := aliceID
	list, err := f.svc.ListAttendance(ctx, attendance.AttendanceFilter{EmployeeID: &employeeID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 60, list[0].BreakMinutes)
	assert.Equal(t, 8.5, list[0].Hours.TotalHoursWorked)

	all, err := f.svc.ListAttendance(ctx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
