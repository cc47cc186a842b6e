package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lectio/backend/internal/dto"
	"lectio/backend/internal/model"
	"lectio/backend/internal/repository"
	"lectio/backend/pkg/redis"
)

// ── scheduling errors ──

var (
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrCourseModuleNotFound = errors.New("course module not found")
	ErrClassroomNotFound    = errors.New("classroom not found")
	ErrInvalidInterval      = errors.New("lesson end time must be after start time")
)

// Conflict kinds reported by Validate.
const (
	ConflictNotFound  = "not_found"
	ConflictClassroom = "classroom"
	ConflictTrainer   = "trainer"
	ConflictHours     = "hours"
)

// ValidationError carries every conflict found for a candidate lesson, so
// the caller can render all of them at once.
type ValidationError struct {
	Conflicts []dto.LessonConflict
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lesson validation failed with %d conflict(s)", len(e.Conflicts))
}

// HoursExceededError aggregate budget failure for a batch, detected before
// any row is written.
type HoursExceededError struct {
	TotalHours     float64
	ScheduledHours float64
	RequestedHours float64
}

func (e *HoursExceededError) Error() string {
	return fmt.Sprintf(
		"hours budget exceeded: %.2f scheduled + %.2f requested > %.2f total",
		e.ScheduledHours, e.RequestedHours, e.TotalHours,
	)
}

// ── LessonService interface ──

// LessonService lesson scheduling business interface: conflict validation,
// hours budget enforcement, single and recurring creation, and the enriched
// schedule views.
type LessonService interface {
	// Create creates one lesson, or a weekly batch when the request is
	// recurring. Batches are all-or-nothing.
	Create(ctx context.Context, req *dto.CreateLessonRequest) (*dto.CreateLessonsResponse, error)
	// Get returns one lesson enriched for display.
	Get(ctx context.Context, id uint) (*dto.LessonDetailResponse, error)
	// List returns lessons in an optional date range, paginated.
	List(ctx context.Context, req *dto.LessonListRequest) ([]dto.LessonDetailResponse, int64, error)
	// Update applies a partial patch and revalidates the merged lesson.
	Update(ctx context.Context, id uint, req *dto.UpdateLessonRequest) (*dto.LessonDetailResponse, error)
	// Delete removes a lesson by id.
	Delete(ctx context.Context, id uint) error
	// Validate dry-runs conflict detection without writing anything.
	Validate(ctx context.Context, req *dto.ValidateLessonRequest) (*dto.ValidateLessonResponse, error)
	// GetHoursInfo returns the hours ledger snapshot for a course module.
	GetHoursInfo(ctx context.Context, courseModuleID uint) (*dto.HoursInfoResponse, error)
	// ListByCourse returns the enriched schedule of a course.
	ListByCourse(ctx context.Context, courseID uint, rng *dto.ListRangeRequest) ([]dto.LessonDetailResponse, error)
	// ListByTrainer returns the enriched schedule of a trainer.
	ListByTrainer(ctx context.Context, trainerID uint, rng *dto.ListRangeRequest) ([]dto.LessonDetailResponse, error)
	// ListByClassroom returns lessons whose effective classroom is the one
	// given, including module-default matches.
	ListByClassroom(ctx context.Context, classroomID uint, req *dto.ClassroomScheduleRequest) ([]dto.LessonDetailResponse, error)
}

type lessonService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewLessonService creates a LessonService. cache may be nil, which
// disables the hours-info cache.
func NewLessonService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) LessonService {
	return &lessonService{repo: repo, cache: cache, logger: logger}
}

// lessonCandidate is the normalized input to the conflict validator, for a
// new lesson or an updated one (ExcludeID set to itself).
type lessonCandidate struct {
	CourseModuleID uint
	Date           time.Time
	StartTime      string
	EndTime        string
	ClassroomID    *uint
	ExcludeID      *uint
}

// ════════════════════════════════════════════════════════════
// Conflict validation
// ════════════════════════════════════════════════════════════

// validate runs the full conflict check for a candidate lesson and returns
// the list of conflicts, empty when the slot is valid.
//
// A missing course module is terminal: a single not_found conflict is
// returned and nothing else is checked. Classroom and trainer conflicts are
// checked against every overlapping lesson on the same date; the hours
// check runs against the module's whole budget regardless of date.
func (s *lessonService) validate(ctx context.Context, c *lessonCandidate) ([]dto.LessonConflict, error) {
	cm, err := s.repo.CourseModule.GetByID(ctx, c.CourseModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.LessonConflict{{
				ErrorType: ConflictNotFound,
				Message:   fmt.Sprintf("course module %d not found", c.CourseModuleID),
			}}, nil
		}
		return nil, err
	}

	candidateHours, err := durationHours(c.StartTime, c.EndTime)
	if err != nil {
		return nil, err
	}
	candidateRoom := effectiveClassroomID(c.ClassroomID, cm)

	var conflicts []dto.LessonConflict

	sameDay, err := s.repo.Lesson.ListOnDate(ctx, c.Date, c.ExcludeID)
	if err != nil {
		return nil, err
	}
	for i := range sameDay {
		existing := &sameDay[i]
		if !overlaps(c.StartTime, c.EndTime, existing.StartTime, existing.EndTime) {
			continue
		}
		existingRoom := effectiveClassroomID(existing.ClassroomID, existing.CourseModule)
		if candidateRoom != nil && existingRoom != nil && *candidateRoom == *existingRoom {
			id := existing.ID
			conflicts = append(conflicts, dto.LessonConflict{
				ErrorType: ConflictClassroom,
				Message: fmt.Sprintf(
					"classroom %d is already booked %s-%s on %s",
					*existingRoom,
					normalizeClock(existing.StartTime), normalizeClock(existing.EndTime),
					formatDate(existing.Date),
				),
				ConflictingLessonID: &id,
			})
		}
		if existing.CourseModule != nil && existing.CourseModule.TrainerID == cm.TrainerID {
			id := existing.ID
			conflicts = append(conflicts, dto.LessonConflict{
				ErrorType: ConflictTrainer,
				Message: fmt.Sprintf(
					"trainer %d already has a lesson %s-%s on %s",
					cm.TrainerID,
					normalizeClock(existing.StartTime), normalizeClock(existing.EndTime),
					formatDate(existing.Date),
				),
				ConflictingLessonID: &id,
			})
		}
	}

	scheduled, err := s.scheduledHours(ctx, c.CourseModuleID, c.ExcludeID)
	if err != nil {
		return nil, err
	}
	total := float64(cm.TotalHours)
	if round2(scheduled+candidateHours) > total {
		conflicts = append(conflicts, dto.LessonConflict{
			ErrorType: ConflictHours,
			Message: fmt.Sprintf(
				"module budget exceeded: %.2fh scheduled + %.2fh requested > %.2fh total",
				scheduled, candidateHours, total,
			),
		})
	}

	return conflicts, nil
}

// scheduledHours sums the duration of every lesson of a course module,
// optionally excluding one for update-in-place revalidation.
func (s *lessonService) scheduledHours(ctx context.Context, courseModuleID uint, excludeID *uint) (float64, error) {
	lessons, err := s.repo.Lesson.ListByCourseModule(ctx, courseModuleID, excludeID)
	if err != nil {
		return 0, err
	}
	var sum float64
	for i := range lessons {
		h, err := durationHours(lessons[i].StartTime, lessons[i].EndTime)
		if err != nil {
			// Tolerate bad historical rows in the sum rather than failing
			// every budget check for the module.
			s.logger.Warn("lesson with invalid time range skipped in hours sum",
				zap.Uint("lessonID", lessons[i].ID), zap.Error(err))
			continue
		}
		sum += h
	}
	return round2(sum), nil
}

// ════════════════════════════════════════════════════════════
// Create — single or weekly recurring, all-or-nothing
// ════════════════════════════════════════════════════════════

func (s *lessonService) Create(ctx context.Context, req *dto.CreateLessonRequest) (*dto.CreateLessonsResponse, error) {
	firstDate, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	singleHours, err := durationHours(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	cm, err := s.repo.CourseModule.GetByID(ctx, req.CourseModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseModuleNotFound
		}
		return nil, err
	}
	if err := s.checkClassroomExists(ctx, req.ClassroomID); err != nil {
		return nil, err
	}

	dates := []time.Time{firstDate}
	if req.IsRecurring && req.RecurrenceWeeks > 1 {
		for k := 1; k < req.RecurrenceWeeks; k++ {
			dates = append(dates, firstDate.AddDate(0, 0, 7*k))
		}
	}

	// Aggregate budget pre-check before any validation or write, so an
	// oversized batch never creates a partial schedule.
	scheduled, err := s.scheduledHours(ctx, req.CourseModuleID, nil)
	if err != nil {
		return nil, err
	}
	totalNew := round2(singleHours * float64(len(dates)))
	if round2(scheduled+totalNew) > float64(cm.TotalHours) {
		return nil, &HoursExceededError{
			TotalHours:     float64(cm.TotalHours),
			ScheduledHours: scheduled,
			RequestedHours: totalNew,
		}
	}

	// Validate every occurrence, then commit once. For a batch only
	// classroom and trainer conflicts are fatal per date; the hours kind
	// was already covered by the aggregate pre-check and a per-date
	// partial sum would be misleading.
	var fatal []dto.LessonConflict
	for _, d := range dates {
		conflicts, err := s.validate(ctx, &lessonCandidate{
			CourseModuleID: req.CourseModuleID,
			Date:           d,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			ClassroomID:    req.ClassroomID,
		})
		if err != nil {
			return nil, err
		}
		for _, conflict := range conflicts {
			if conflict.ErrorType == ConflictClassroom || conflict.ErrorType == ConflictTrainer {
				fatal = append(fatal, conflict)
			}
		}
	}
	if len(fatal) > 0 {
		return nil, &ValidationError{Conflicts: fatal}
	}

	lessons := make([]model.Lesson, 0, len(dates))
	for _, d := range dates {
		lessons = append(lessons, model.Lesson{
			CourseModuleID: req.CourseModuleID,
			ClassroomID:    req.ClassroomID,
			Date:           d,
			StartTime:      normalizeClock(req.StartTime),
			EndTime:        normalizeClock(req.EndTime),
			Notes:          req.Notes,
		})
	}
	if err := s.repo.Lesson.BatchCreate(ctx, lessons); err != nil {
		s.logger.Error("lesson batch insert failed", zap.Error(err))
		return nil, err
	}
	s.invalidateHours(ctx, req.CourseModuleID)

	details := make([]dto.LessonDetailResponse, 0, len(lessons))
	for i := range lessons {
		lessons[i].CourseModule = cm
		details = append(details, s.buildDetail(&lessons[i]))
	}

	newScheduled := round2(scheduled + totalNew)
	return &dto.CreateLessonsResponse{
		CreatedLessons: details,
		Count:          len(details),
		HoursInfo: &dto.HoursInfoResponse{
			CourseModuleID: cm.ID,
			TotalHours:     float64(cm.TotalHours),
			ScheduledHours: newScheduled,
			RemainingHours: remainingHours(float64(cm.TotalHours), newScheduled),
			LessonHours:    totalNew,
			WouldExceed:    false,
		},
	}, nil
}

// ════════════════════════════════════════════════════════════
// Read paths
// ════════════════════════════════════════════════════════════

func (s *lessonService) Get(ctx context.Context, id uint) (*dto.LessonDetailResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	detail := s.buildDetail(lesson)
	return &detail, nil
}

func (s *lessonService) List(ctx context.Context, req *dto.LessonListRequest) ([]dto.LessonDetailResponse, int64, error) {
	start, end, err := parseRange(&req.ListRangeRequest)
	if err != nil {
		return nil, 0, err
	}
	lessons, total, err := s.repo.Lesson.List(ctx, start, end, req.GetSkip(), req.GetLimit())
	if err != nil {
		return nil, 0, err
	}
	return s.buildDetails(lessons), total, nil
}

func (s *lessonService) GetHoursInfo(ctx context.Context, courseModuleID uint) (*dto.HoursInfoResponse, error) {
	if s.cache != nil {
		var cached dto.HoursInfoResponse
		if hit, err := s.cache.GetHoursInfo(ctx, courseModuleID, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	cm, err := s.repo.CourseModule.GetByID(ctx, courseModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseModuleNotFound
		}
		return nil, err
	}
	scheduled, err := s.scheduledHours(ctx, courseModuleID, nil)
	if err != nil {
		return nil, err
	}

	info := &dto.HoursInfoResponse{
		CourseModuleID: cm.ID,
		TotalHours:     float64(cm.TotalHours),
		ScheduledHours: scheduled,
		RemainingHours: remainingHours(float64(cm.TotalHours), scheduled),
		WouldExceed:    scheduled > float64(cm.TotalHours),
	}
	if s.cache != nil {
		if err := s.cache.SetHoursInfo(ctx, courseModuleID, info); err != nil {
			s.logger.Warn("hours info cache write failed", zap.Error(err))
		}
	}
	return info, nil
}

func (s *lessonService) ListByCourse(ctx context.Context, courseID uint, rng *dto.ListRangeRequest) ([]dto.LessonDetailResponse, error) {
	cms, err := s.repo.CourseModule.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.listForModules(ctx, cms, rng)
}

func (s *lessonService) ListByTrainer(ctx context.Context, trainerID uint, rng *dto.ListRangeRequest) ([]dto.LessonDetailResponse, error) {
	cms, err := s.repo.CourseModule.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return s.listForModules(ctx, cms, rng)
}

func (s *lessonService) listForModules(ctx context.Context, cms []model.CourseModule, rng *dto.ListRangeRequest) ([]dto.LessonDetailResponse, error) {
	if len(cms) == 0 {
		return []dto.LessonDetailResponse{}, nil
	}
	ids := make([]uint, 0, len(cms))
	for i := range cms {
		ids = append(ids, cms[i].ID)
	}
	start, end, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	lessons, err := s.repo.Lesson.ListByCourseModules(ctx, ids, start, end)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(lessons), nil
}

func (s *lessonService) ListByClassroom(ctx context.Context, classroomID uint, req *dto.ClassroomScheduleRequest) ([]dto.LessonDetailResponse, error) {
	if err := s.checkClassroomExists(ctx, &classroomID); err != nil {
		return nil, err
	}
	defaultIDs, err := s.repo.CourseModule.ListIDsByDefaultClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	// An exact date wins over a range: start/end only apply when no date
	// is given.
	var exact, start, end *time.Time
	if req.Date != "" {
		d, err := parseDate(req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		exact = &d
	} else {
		start, end, err = parseRange(&req.ListRangeRequest)
		if err != nil {
			return nil, err
		}
	}
	lessons, err := s.repo.Lesson.ListByEffectiveClassroom(ctx, classroomID, defaultIDs, exact, start, end)
	if err != nil {
		return nil, err
	}
	return s.buildDetails(lessons), nil
}

// ════════════════════════════════════════════════════════════
// Update — patch merge plus full revalidation
// ════════════════════════════════════════════════════════════

func (s *lessonService) Update(ctx context.Context, id uint, req *dto.UpdateLessonRequest) (*dto.LessonDetailResponse, error) {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	if req.ClassroomID != nil {
		if err := s.checkClassroomExists(ctx, req.ClassroomID); err != nil {
			return nil, err
		}
	}

	merged := applyLessonPatch(lesson, req)

	// Every conflict kind is fatal on update; the lesson itself is
	// excluded so it never conflicts with its own old slot.
	conflicts, err := s.validate(ctx, &lessonCandidate{
		CourseModuleID: merged.CourseModuleID,
		Date:           merged.Date,
		StartTime:      merged.StartTime,
		EndTime:        merged.EndTime,
		ClassroomID:    merged.ClassroomID,
		ExcludeID:      &id,
	})
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ValidationError{Conflicts: conflicts}
	}

	if err := s.repo.Lesson.Update(ctx, merged); err != nil {
		s.logger.Error("lesson update failed", zap.Uint("lessonID", id), zap.Error(err))
		return nil, err
	}
	s.invalidateHours(ctx, merged.CourseModuleID)

	detail := s.buildDetail(merged)
	return &detail, nil
}

// applyLessonPatch merges the set fields of a patch over an existing
// lesson, returning a new record. The original is left untouched so a
// failed validation never leaks partial changes.
func applyLessonPatch(lesson *model.Lesson, req *dto.UpdateLessonRequest) *model.Lesson {
	merged := *lesson
	if req.Date != nil {
		if d, err := parseDate(*req.Date); err == nil {
			merged.Date = d
		}
	}
	if req.StartTime != nil {
		merged.StartTime = normalizeClock(*req.StartTime)
	}
	if req.EndTime != nil {
		merged.EndTime = normalizeClock(*req.EndTime)
	}
	if req.ClassroomID != nil {
		merged.ClassroomID = req.ClassroomID
	}
	if req.Notes != nil {
		merged.Notes = *req.Notes
	}
	return &merged
}

func (s *lessonService) Delete(ctx context.Context, id uint) error {
	lesson, err := s.repo.Lesson.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		return err
	}
	if err := s.repo.Lesson.Delete(ctx, id); err != nil {
		s.logger.Error("lesson delete failed", zap.Uint("lessonID", id), zap.Error(err))
		return err
	}
	s.invalidateHours(ctx, lesson.CourseModuleID)
	return nil
}

func (s *lessonService) Validate(ctx context.Context, req *dto.ValidateLessonRequest) (*dto.ValidateLessonResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	conflicts, err := s.validate(ctx, &lessonCandidate{
		CourseModuleID: req.CourseModuleID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ClassroomID:    req.ClassroomID,
		ExcludeID:      req.ExcludeLessonID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ValidateLessonResponse{
		Valid:     len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// ── helpers ──

// checkClassroomExists verifies a classroom override references a real
// room. A nil id (no override) always passes.
func (s *lessonService) checkClassroomExists(ctx context.Context, classroomID *uint) error {
	if classroomID == nil {
		return nil
	}
	if _, err := s.repo.Classroom.GetByID(ctx, *classroomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassroomNotFound
		}
		return err
	}
	return nil
}

func (s *lessonService) invalidateHours(ctx context.Context, courseModuleID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateHoursInfo(ctx, courseModuleID); err != nil {
		s.logger.Warn("hours info cache invalidation failed",
			zap.Uint("courseModuleID", courseModuleID), zap.Error(err))
	}
}

func remainingHours(total, scheduled float64) float64 {
	remaining := round2(total - scheduled)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func parseRange(rng *dto.ListRangeRequest) (start, end *time.Time, err error) {
	if rng == nil {
		return nil, nil, nil
	}
	if rng.StartDate != "" {
		d, err := parseDate(rng.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start_date: %w", err)
		}
		start = &d
	}
	if rng.EndDate != "" {
		d, err := parseDate(rng.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end_date: %w", err)
		}
		end = &d
	}
	return start, end, nil
}

// ── view builder ──

// buildDetail enriches a lesson for display. Missing relations degrade to
// "N/A" placeholders instead of failing; the view is never used for
// validation.
func (s *lessonService) buildDetail(lesson *model.Lesson) dto.LessonDetailResponse {
	detail := dto.LessonDetailResponse{
		LessonResponse: dto.LessonResponse{
			ID:             lesson.ID,
			CourseModuleID: lesson.CourseModuleID,
			ClassroomID:    lesson.ClassroomID,
			Date:           formatDate(lesson.Date),
			StartTime:      normalizeClock(lesson.StartTime),
			EndTime:        normalizeClock(lesson.EndTime),
			Notes:          lesson.Notes,
			CreatedAt:      lesson.CreatedAt.Format(time.RFC3339),
			UpdatedAt:      lesson.UpdatedAt.Format(time.RFC3339),
		},
		ModuleName:  "N/A",
		CourseName:  "N/A",
		TrainerName: "N/A",
	}
	if h, err := durationHours(lesson.StartTime, lesson.EndTime); err == nil {
		detail.DurationHours = h
	}

	cm := lesson.CourseModule
	if cm == nil {
		return detail
	}
	if cm.Module != nil {
		detail.ModuleName = cm.Module.Name
	}
	if cm.Course != nil {
		detail.CourseName = cm.Course.Name
	}
	if cm.Trainer != nil {
		detail.TrainerName = cm.Trainer.DisplayName()
	}

	if lesson.ClassroomID != nil && lesson.Classroom != nil {
		name := lesson.Classroom.Name
		detail.ClassroomName = &name
	} else if lesson.ClassroomID == nil && cm.Classroom != nil {
		name := cm.Classroom.Name
		detail.ClassroomName = &name
	}
	return detail
}

func (s *lessonService) buildDetails(lessons []model.Lesson) []dto.LessonDetailResponse {
	result := make([]dto.LessonDetailResponse, 0, len(lessons))
	for i := range lessons {
		result = append(result, s.buildDetail(&lessons[i]))
	}
	return result
}
