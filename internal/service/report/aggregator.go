package report

import (
	"sort"
	"time"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/attendance"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/employee"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/report"
	"github.com/Rimhamzeh/Attendance-Management-System/internal/pkg/timeutil"
	attendanceservice "github.com/Rimhamzeh/Attendance-Management-System/internal/service/attendance"
)

const UnknownEmployeeName = "Unknown"

// Directory resolves employee IDs to display names and fixes the order in
// which employees appear in reports.
type Directory struct {
	employees []employee.Employee
	names     map[string]string
}

func NewDirectory(employees []employee.Employee) *Directory {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
	}
	return &Directory{employees: employees, names: names}
}

// Name falls back to "Unknown" for IDs the directory does not know.
func (d *Directory) Name(employeeID string) string {
	if name, ok := d.names[employeeID]; ok && name != "" {
		return name
	}
	return UnknownEmployeeName
}

func (d *Directory) Has(employeeID string) bool {
	_, ok := d.names[employeeID]
	return ok
}

func (d *Directory) Employees() []employee.Employee {
	return d.employees
}

// DailyGroup is the fold of every row one employee has on one date.
type DailyGroup struct {
	EmployeeID string
	TimeIn     *string
	TimeOut    *string
	OverTime   *string
	Breaks     []attendance.Break
	Absent     bool
}

// FoldDaily merges rows into one: earliest timeIn, latest timeOut, last
// non-null overTime, all breaks, and absent if any row is absent. Clock
// strings are zero-padded so string order is time order.
func FoldDaily(records []attendance.Attendance) DailyGroup {
	var g DailyGroup
	for i, r := range records {
		if i == 0 {
			g.EmployeeID = r.EmployeeID
		}
		if present(r.TimeIn) && (g.TimeIn == nil || *r.TimeIn < *g.TimeIn) {
			g.TimeIn = r.TimeIn
		}
		if present(r.TimeOut) && (g.TimeOut == nil || *r.TimeOut > *g.TimeOut) {
			g.TimeOut = r.TimeOut
		}
		if present(r.OverTime) {
			g.OverTime = r.OverTime
		}
		g.Breaks = append(g.Breaks, r.Breaks...)
		if r.Status == attendance.StatusAbsent {
			g.Absent = true
		}
	}
	return g
}

// hasData is false for a fold of absence-pending rows only.
func (g DailyGroup) hasData() bool {
	return g.Absent || g.TimeIn != nil || g.TimeOut != nil || g.OverTime != nil
}

func (g DailyGroup) status() attendance.Status {
	if g.Absent {
		return attendance.StatusAbsent
	}
	return attendance.StatusPresent
}

// Aggregator turns raw attendance rows into report rows.
type Aggregator struct {
	calculator *attendanceservice.HoursCalculator
}

func NewAggregator(calculator *attendanceservice.HoursCalculator) *Aggregator {
	return &Aggregator{calculator: calculator}
}

func (a *Aggregator) hours(date time.Time, g DailyGroup) attendance.Hours {
	if g.Absent {
		return attendance.Hours{}
	}
	return a.calculator.ComputeHours(date, g.TimeIn, g.TimeOut, attendanceservice.TotalBreakMinutes(g.Breaks))
}

// GroupDaily partitions one date's rows by resolved employee name and folds
// each partition. Every directory employee gets a record, in directory
// order; partitions that match no directory employee follow in first-seen
// order.
func (a *Aggregator) GroupDaily(date time.Time, records []attendance.Attendance, dir *Directory) []report.DailyRecord {
	partitions := make(map[string][]attendance.Attendance)
	var order []string
	for _, r := range records {
		name := dir.Name(r.EmployeeID)
		if _, ok := partitions[name]; !ok {
			order = append(order, name)
		}
		partitions[name] = append(partitions[name], r)
	}

	out := make([]report.DailyRecord, 0, len(dir.Employees())+len(order))
	emitted := make(map[string]bool, len(order))

	for _, e := range dir.Employees() {
		name := dir.Name(e.ID)
		rows, ok := partitions[name]
		if !ok {
			out = append(out, emptyDailyRecord(e.ID, name))
			continue
		}
		if emitted[name] {
			continue
		}
		emitted[name] = true
		out = append(out, a.dailyRecord(date, name, FoldDaily(rows)))
	}

	for _, name := range order {
		if emitted[name] {
			continue
		}
		emitted[name] = true
		out = append(out, a.dailyRecord(date, name, FoldDaily(partitions[name])))
	}

	return out
}

func (a *Aggregator) dailyRecord(date time.Time, name string, g DailyGroup) report.DailyRecord {
	h := a.hours(date, g)
	var status *string
	if g.hasData() {
		s := string(g.status())
		status = &s
	}

	return report.DailyRecord{
		EmployeeID:         g.EmployeeID,
		EmployeeName:       name,
		TimeIn:             g.TimeIn,
		TimeOut:            g.TimeOut,
		OverTime:           g.OverTime,
		Breaks:             toBreakResponses(g.Breaks),
		BreakMinutes:       attendanceservice.TotalBreakMinutes(g.Breaks),
		Status:             status,
		RegularHours:       h.RegularHours,
		OvertimeHours:      h.OvertimeHours,
		TotalHours:         timeutil.RoundHours(h.RegularHours + h.OvertimeHours),
		TotalHoursWorked:   h.TotalHoursWorked,
		RegularDisplay:     timeutil.FormatHours(h.RegularHours),
		OvertimeDisplay:    timeutil.FormatHours(h.OvertimeHours),
		TotalWorkedDisplay: timeutil.FormatHours(h.TotalHoursWorked),
	}
}

func emptyDailyRecord(employeeID, name string) report.DailyRecord {
	zero := timeutil.FormatHours(0)
	return report.DailyRecord{
		EmployeeID:         employeeID,
		EmployeeName:       name,
		Breaks:             []attendance.BreakResponse{},
		RegularDisplay:     zero,
		OvertimeDisplay:    zero,
		TotalWorkedDisplay: zero,
	}
}

// GroupMonthly emits one row per employee and date, folding same-day rows.
// Dates holding only absence-pending rows are skipped. An employee left
// with no dated row gets a single zero-hour placeholder. Dated rows come
// first, in directory order then date ascending; placeholders sort last.
// Rows of employees missing from the directory are dropped.
func (a *Aggregator) GroupMonthly(records []attendance.Attendance, dir *Directory) []report.MonthlyRow {
	byEmployee := make(map[string][]attendance.Attendance)
	for _, r := range records {
		if !dir.Has(r.EmployeeID) {
			continue
		}
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	var dated, placeholders []report.MonthlyRow
	for _, e := range dir.Employees() {
		name := dir.Name(e.ID)
		rows := a.employeeMonth(e.ID, name, byEmployee[e.ID])
		if len(rows) == 0 {
			placeholders = append(placeholders, report.MonthlyRow{
				EmployeeID:   e.ID,
				EmployeeName: name,
				Date:         report.PlaceholderDate,
				Placeholder:  true,
			})
			continue
		}
		dated = append(dated, rows...)
	}

	return append(dated, placeholders...)
}

func (a *Aggregator) employeeMonth(employeeID, name string, records []attendance.Attendance) []report.MonthlyRow {
	byDate := make(map[time.Time][]attendance.Attendance)
	var dates []time.Time
	for _, r := range records {
		day := truncateDay(r.Date)
		if _, ok := byDate[day]; !ok {
			dates = append(dates, day)
		}
		byDate[day] = append(byDate[day], r)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]report.MonthlyRow, 0, len(dates))
	for _, day := range dates {
		g := FoldDaily(byDate[day])
		if !g.hasData() {
			continue
		}
		h := a.hours(day, g)
		rows = append(rows, report.MonthlyRow{
			EmployeeID:       employeeID,
			EmployeeName:     name,
			Date:             timeutil.FormatDate(day),
			TimeIn:           g.TimeIn,
			TimeOut:          g.TimeOut,
			OverTime:         g.OverTime,
			Status:           string(g.status()),
			BreakMinutes:     attendanceservice.TotalBreakMinutes(g.Breaks),
			RegularHours:     h.RegularHours,
			OvertimeHours:    h.OvertimeHours,
			TotalHours:       timeutil.RoundHours(h.RegularHours + h.OvertimeHours),
			TotalHoursWorked: h.TotalHoursWorked,
		})
	}
	return rows
}

func toBreakResponses(breaks []attendance.Break) []attendance.BreakResponse {
	out := make([]attendance.BreakResponse, 0, len(breaks))
	for _, b := range breaks {
		out = append(out, attendance.BreakResponse{
			ID:           b.ID,
			AttendanceID: b.AttendanceID,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
		})
	}
	return out
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

