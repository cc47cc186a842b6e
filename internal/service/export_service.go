package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lectio/backend/internal/dto"
	"lectio/backend/internal/repository"
)

// ── export errors ──

var (
	ErrExportCourseNotFound  = errors.New("course has no modules to export")
	ErrExportTrainerNotFound = errors.New("trainer not found")
	ErrExportNoLessons       = errors.New("no lessons in the requested range")
	ErrExportGenerateFail    = errors.New("failed to generate export file")
)

// ExportService schedule export interface.
//
// Excel exports return a bytes.Buffer plus a suggested filename; the
// handler sets the response headers and streams it. The calendar export
// returns serialized iCalendar text for feed subscription.
type ExportService interface {
	// ExportCourseSchedule exports a course's lesson schedule as .xlsx.
	ExportCourseSchedule(ctx context.Context, courseID uint, rng *dto.ListRangeRequest) (*bytes.Buffer, string, error)
	// ExportTrainerCalendar exports a trainer's lessons as an iCalendar feed.
	ExportTrainerCalendar(ctx context.Context, trainerID uint, rng *dto.ListRangeRequest) (string, string, error)
}

type exportService struct {
	repo    *repository.Repository
	lessons LessonService
	logger  *zap.Logger
}

func NewExportService(repo *repository.Repository, lessons LessonService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, lessons: lessons, logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportCourseSchedule — course timetable as Excel
// ════════════════════════════════════════════════════════════
//
// One sheet, one row per lesson ordered by (date, start_time):
//   | Date | Start | End | Module | Trainer | Classroom | Duration (h) | Notes |

func (s *exportService) ExportCourseSchedule(ctx context.Context, courseID uint, rng *dto.ListRangeRequest) (*bytes.Buffer, string, error) {
	cms, err := s.repo.CourseModule.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("course modules query failed", zap.Error(err))
		return nil, "", err
	}
	if len(cms) == 0 {
		return nil, "", ErrExportCourseNotFound
	}
	courseName := fmt.Sprintf("course-%d", courseID)
	if cms[0].Course != nil {
		courseName = cms[0].Course.Name
	}

	details, err := s.lessons.ListByCourse(ctx, courseID, rng)
	if err != nil {
		return nil, "", err
	}
	if len(details) == 0 {
		return nil, "", ErrExportNoLessons
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Schedule"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 8)
	f.SetColWidth(sheetName, "D", "F", 24)
	f.SetColWidth(sheetName, "G", "G", 12)
	f.SetColWidth(sheetName, "H", "H", 36)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Lesson Schedule", courseName))
	f.MergeCell(sheetName, "A1", "H1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Date", "Start", "End", "Module", "Trainer", "Classroom", "Duration (h)", "Notes"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}

	row := 3
	for _, d := range details {
		classroom := "-"
		if d.ClassroomName != nil {
			classroom = *d.ClassroomName
		}
		f.SetCellValue(sheetName, cell("A", row), d.Date)
		f.SetCellValue(sheetName, cell("B", row), d.StartTime)
		f.SetCellValue(sheetName, cell("C", row), d.EndTime)
		f.SetCellValue(sheetName, cell("D", row), d.ModuleName)
		f.SetCellValue(sheetName, cell("E", row), d.TrainerName)
		f.SetCellValue(sheetName, cell("F", row), classroom)
		f.SetCellValue(sheetName, cell("G", row), d.DurationHours)
		f.SetCellValue(sheetName, cell("H", row), d.Notes)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("excel write failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("schedule_%s.xlsx", courseName)
	return buf, filename, nil
}

// ════════════════════════════════════════════════════════════
// ExportTrainerCalendar — trainer lessons as an iCalendar feed
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportTrainerCalendar(ctx context.Context, trainerID uint, rng *dto.ListRangeRequest) (string, string, error) {
	trainer, err := s.repo.User.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrExportTrainerNotFound
		}
		return "", "", err
	}

	details, err := s.lessons.ListByTrainer(ctx, trainerID, rng)
	if err != nil {
		return "", "", err
	}
	if len(details) == 0 {
		return "", "", ErrExportNoLessons
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//lectio//schedule//EN")

	now := time.Now().UTC()
	for _, d := range details {
		start, err := time.Parse("2006-01-02 15:04", d.Date+" "+d.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse("2006-01-02 15:04", d.Date+" "+d.EndTime)
		if err != nil {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("lesson-%d@lectio", d.ID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(fmt.Sprintf("%s (%s)", d.ModuleName, d.CourseName))
		if d.ClassroomName != nil {
			event.SetLocation(*d.ClassroomName)
		}
		if d.Notes != "" {
			event.SetDescription(d.Notes)
		}
	}

	filename := fmt.Sprintf("lessons_%s.ics", trainer.DisplayName())
	return cal.Serialize(), filename, nil
}

// ── cell helpers ──

func colName(i int) string {
	name, _ := excelize.ColumnNumberToName(i + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
