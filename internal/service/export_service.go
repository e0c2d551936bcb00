package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"slotboard/backend/internal/model"
	"slotboard/backend/internal/repository"
	"slotboard/backend/pkg/timeutil"
)

// ── export business errors ──

var (
	ErrExportEmptyWeek    = errors.New("nothing to export for this week")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService renders one resolved week as a downloadable file. The
// handler sets the HTTP headers and streams the returned buffer.
type ExportService interface {
	// ExportWeekXLSX renders the week containing date as a spreadsheet.
	ExportWeekXLSX(ctx context.Context, timetableID, date, ownerID string) (*bytes.Buffer, string, error)
	// ExportWeekICS renders the week containing date as an iCalendar feed,
	// one VEVENT per enabled slot.
	ExportWeekICS(ctx context.Context, timetableID, date, ownerID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo      *repository.Repository
	weekStart time.Weekday
	logger    *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, weekStart time.Weekday, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, weekStart: weekStart, logger: logger}
}

// exportRow is one effective slot flattened for rendering.
type exportRow struct {
	day       string
	date      time.Time
	startTime string
	endTime   string
	disabled  bool
	classes   []string
	notes     []string
}

func (s *exportService) ExportWeekXLSX(ctx context.Context, timetableID, date, ownerID string) (*bytes.Buffer, string, error) {
	timetable, week, rows, err := s.loadWeek(ctx, timetableID, date, ownerID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Week"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 12)
	f.SetColWidth(sheetName, "C", "C", 14)
	f.SetColWidth(sheetName, "D", "D", 36)
	f.SetColWidth(sheetName, "E", "E", 36)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	title := fmt.Sprintf("%s - %s", timetable.Name, timeutil.WeekNumber{Year: week.Year, Week: week.Week})
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Day", "Date", "Time", "Classes", "Notes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	rowNum := 3
	for _, r := range rows {
		timeText := fmt.Sprintf("%s-%s", r.startTime, r.endTime)
		if r.disabled {
			timeText += " (off)"
		}
		values := []any{
			capitalize(r.day),
			r.date.Format(dateLayout),
			timeText,
			strings.Join(r.classes, ", "),
			strings.Join(r.notes, "; "),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)
			f.SetCellValue(sheetName, cell, v)
		}
		rowNum++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_%d-W%02d.xlsx", sanitizeFilename(timetable.Name), week.Year, week.Week)
	return buf, filename, nil
}

func (s *exportService) ExportWeekICS(ctx context.Context, timetableID, date, ownerID string) (*bytes.Buffer, string, error) {
	timetable, week, rows, err := s.loadWeek(ctx, timetableID, date, ownerID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//slotboard//timetable//EN")

	count := 0
	for _, r := range rows {
		if r.disabled {
			continue
		}
		start, err := combineDateTime(r.date, r.startTime)
		if err != nil {
			continue
		}
		end, err := combineDateTime(r.date, r.endTime)
		if err != nil {
			continue
		}

		uid := fmt.Sprintf("%s-%d-W%02d-%s-%s@slotboard", timetableID, week.Year, week.Week, r.day, r.startTime)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(time.Now())
		event.SetStartAt(start)
		event.SetEndAt(end)

		summary := timetable.Name
		if len(r.classes) > 0 {
			summary = strings.Join(r.classes, ", ")
		}
		event.SetSummary(summary)
		if len(r.notes) > 0 {
			event.SetDescription(strings.Join(r.notes, "\n"))
		}
		count++
	}
	if count == 0 {
		return nil, "", ErrExportEmptyWeek
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s_%d-W%02d.ics", sanitizeFilename(timetable.Name), week.Year, week.Week)
	return buf, filename, nil
}

// ── helpers ──

// loadWeek resolves the target week into render-ready rows, sorted by
// timetable day order then effective start time.
func (s *exportService) loadWeek(ctx context.Context, timetableID, date, ownerID string) (*model.Timetable, WeekRef, []exportRow, error) {
	timetable, err := s.repo.Timetable.GetByID(ctx, timetableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, WeekRef{}, nil, ErrTimetableNotFound
		}
		s.logger.Error("get timetable failed", zap.String("id", timetableID), zap.Error(err))
		return nil, WeekRef{}, nil, err
	}
	if timetable.OwnerID != ownerID {
		return nil, WeekRef{}, nil, ErrNotOwner
	}

	day, err := parseDate(date)
	if err != nil {
		return nil, WeekRef{}, nil, err
	}
	week := NewWeekRef(day, s.weekStart)

	slots, err := s.repo.Slot.ListByTimetable(ctx, timetableID)
	if err != nil {
		s.logger.Error("list slots failed", zap.String("timetable_id", timetableID), zap.Error(err))
		return nil, WeekRef{}, nil, err
	}
	assignments, err := s.repo.SlotClass.ListByTimetableWeek(ctx, timetableID, week.Year, week.Week)
	if err != nil {
		s.logger.Error("list assignments failed", zap.String("timetable_id", timetableID), zap.Error(err))
		return nil, WeekRef{}, nil, err
	}

	dayOrder := make(map[string]int, len(timetable.Days))
	dayDate := make(map[string]time.Time, len(timetable.Days))
	for i, name := range timetable.Days {
		dayOrder[name] = i
		if weekday, err := timeutil.ParseWeekday(name); err == nil {
			offset := (int(weekday) - int(s.weekStart) + 7) % 7
			dayDate[name] = week.Start.AddDate(0, 0, offset)
		}
	}

	var rows []exportRow
	for i := range slots {
		slot := &slots[i]
		if _, ok := dayOrder[slot.Day]; !ok {
			continue
		}
		eff := ResolveSlot(slot, week)

		row := exportRow{
			day:       slot.Day,
			date:      dayDate[slot.Day],
			startTime: eff.StartTime,
			endTime:   eff.EndTime,
			disabled:  eff.Disabled,
		}
		for _, a := range VisibleAssignments(assignments, slot.SlotID, week) {
			name := a.ClassID
			if a.Class != nil {
				name = a.Class.Name
			}
			row.classes = append(row.classes, name)
			if text := DisplayText(&a); text != "" {
				row.notes = append(row.notes, fmt.Sprintf("%s: %s", name, text))
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, WeekRef{}, nil, ErrExportEmptyWeek
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if dayOrder[rows[i].day] != dayOrder[rows[j].day] {
			return dayOrder[rows[i].day] < dayOrder[rows[j].day]
		}
		return rows[i].startTime < rows[j].startTime
	})

	return timetable, week, rows, nil
}

func combineDateTime(day time.Time, clock string) (time.Time, error) {
	minutes, err := timeutil.TimeToMinutes(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	if name == "" {
		return "timetable"
	}
	return replacer.Replace(name)
}
