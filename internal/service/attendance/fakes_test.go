package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/employee"
)

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type fakeAttendanceRepo struct {
	rows   map[string]attendance.Attendance
	names  map[string]string
	nextID int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: map[string]attendance.Attendance{}, names: map[string]string{}}
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.nextID++
	a.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", f.nextID)
	f.rows[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	a, ok := f.rows[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if name, ok := f.names[a.EmployeeID]; ok {
		a.EmployeeName = &name
	}
	return a, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.sorted() {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.sorted() {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListDates(_ context.Context, from, to time.Time) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	if _, ok := f.rows[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.rows[a.ID] = a
	return nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeAttendanceRepo) CreateMissingForDate(_ context.Context, date time.Time) (int64, error) {
	var created int64
	for employeeID := range f.names {
		found := false
		for _, a := range f.rows {
			if a.EmployeeID == employeeID && a.Date.Equal(date) {
				found = true
				break
			}
		}
		if !found {
			f.nextID++
			id := fmt.Sprintf("00000000-0000-0000-0000-%012d", f.nextID)
			f.rows[id] = attendance.Attendance{ID: id, EmployeeID: employeeID, Date: date, Status: attendance.StatusPresent}
			created++
		}
	}
	return created, nil
}

func (f *fakeAttendanceRepo) sorted() []attendance.Attendance {
	out := make([]attendance.Attendance, 0, len(f.rows))
	for _, a := range f.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeBreakRepo struct {
	breaks map[string]attendance.Break
	nextID int
}

func newFakeBreakRepo() *fakeBreakRepo {
	return &fakeBreakRepo{breaks: map[string]attendance.Break{}}
}

func (f *fakeBreakRepo) Create(_ context.Context, b attendance.Break) (attendance.Break, error) {
	f.nextID++
	b.ID = fmt.Sprintf("10000000-0000-0000-0000-%012d", f.nextID)
	f.breaks[b.ID] = b
	return b, nil
}

func (f *fakeBreakRepo) GetByID(_ context.Context, id string) (attendance.Break, error) {
	b, ok := f.breaks[id]
	if !ok {
		return attendance.Break{}, attendance.ErrBreakNotFound
	}
	return b, nil
}

func (f *fakeBreakRepo) ListByAttendanceID(_ context.Context, attendanceID string) ([]attendance.Break, error) {
	var out []attendance.Break
	for _, b := range f.breaks {
		if b.AttendanceID == attendanceID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (f *fakeBreakRepo) ListByAttendanceIDs(ctx context.Context, ids []string) (map[string][]attendance.Break, error) {
	out := make(map[string][]attendance.Break, len(ids))
	for _, id := range ids {
		breaks, _ := f.ListByAttendanceID(ctx, id)
		if len(breaks) > 0 {
			out[id] = breaks
		}
	}
	return out, nil
}

func (f *fakeBreakRepo) Update(_ context.Context, b attendance.Break) error {
	if _, ok := f.breaks[b.ID]; !ok {
		return attendance.ErrBreakNotFound
	}
	f.breaks[b.ID] = b
	return nil
}

func (f *fakeBreakRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.breaks[id]; !ok {
		return attendance.ErrBreakNotFound
	}
	delete(f.breaks, id)
	return nil
}

func (f *fakeBreakRepo) DeleteByAttendanceID(_ context.Context, attendanceID string) error {
	for id, b := range f.breaks {
		if b.AttendanceID == attendanceID {
			delete(f.breaks, id)
		}
	}
	return nil
}
