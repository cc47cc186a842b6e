package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"lectio/backend/internal/dto"
	"lectio/backend/internal/model"
	"lectio/backend/internal/repository"
)

// ── test fixtures ──

func setupTestLessonService() (LessonService, *mockLessonRepo, *mockCourseModuleRepo) {
	cms := newMockCourseModuleRepo()
	lessons := newMockLessonRepo(cms)
	rooms := newMockClassroomRepo()
	// rooms 1..9 exist; overrides referencing anything else must be rejected
	for id := uint(1); id <= 9; id++ {
		rooms.rooms[id] = &model.Classroom{ID: id, Name: "Lab", Capacity: 20, IsAvailable: true}
	}
	repo := &repository.Repository{
		Lesson:              lessons,
		CourseModule:        cms,
		Classroom:           rooms,
		User:                newMockUserRepo(),
		TrainerAvailability: newMockAvailabilityRepo(),
	}
	svc := NewLessonService(repo, nil, zap.NewNop())
	return svc, lessons, cms
}

func uintPtr(v uint) *uint { return &v }

// seedModule registers a course module with full display relations.
func seedModule(cms *mockCourseModuleRepo, id, trainerID uint, classroomID *uint, totalHours int) *model.CourseModule {
	cm := &model.CourseModule{
		ID:          id,
		CourseID:    1,
		ModuleID:    id,
		TrainerID:   trainerID,
		ClassroomID: classroomID,
		Order:       int(id),
		TotalHours:  totalHours,
		Module:      &model.Module{ID: id, Name: "Go Fundamentals"},
		Course:      &model.Course{ID: 1, Name: "Backend Engineering 2026"},
		Trainer:     &model.User{ID: trainerID, FullName: "Maria Santos", Email: "maria@lectio.test"},
	}
	if classroomID != nil {
		cm.Classroom = &model.Classroom{ID: *classroomID, Name: "Lab"}
	}
	cms.modules[id] = cm
	return cm
}

// ── Create: single lesson ──

func TestLessonService_Create_Single(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)

	result, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "12:00",
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if result.Count != 1 || len(result.CreatedLessons) != 1 {
		t.Fatalf("expected 1 created lesson, got %d", result.Count)
	}
	if len(lessons.lessons) != 1 {
		t.Fatalf("expected 1 stored row, got %d", len(lessons.lessons))
	}
	info := result.HoursInfo
	if info == nil {
		t.Fatal("expected hours info in response")
	}
	if info.ScheduledHours != 3.0 {
		t.Errorf("expected scheduled_hours=3.0, got %.2f", info.ScheduledHours)
	}
	if info.RemainingHours != 22.0 {
		t.Errorf("expected remaining_hours=22.0, got %.2f", info.RemainingHours)
	}
	if info.WouldExceed {
		t.Error("budget should not be exceeded")
	}
}

func TestLessonService_Create_InvalidInterval(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	seedModule(cms, 1, 10, nil, 25)

	_, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "12:00",
		EndTime:        "09:00",
	})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got %v", err)
	}
	if len(lessons.lessons) != 0 {
		t.Error("no rows should be written")
	}
}

func TestLessonService_Create_ModuleNotFound(t *testing.T) {
	svc, _, _ := setupTestLessonService()

	_, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 99,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})
	if !errors.Is(err, ErrCourseModuleNotFound) {
		t.Fatalf("expected ErrCourseModuleNotFound, got %v", err)
	}
}

// ── Create: conflicts ──

func TestLessonService_Create_TrainerConflict(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	// two different modules, same trainer
	seedModule(cms, 1, 10, uintPtr(7), 25)
	seedModule(cms, 2, 10, uintPtr(8), 25)

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "12:00",
	}); err != nil {
		t.Fatalf("first lesson should succeed: %v", err)
	}

	_, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 2,
		Date:           "2026-09-07",
		StartTime:      "11:00",
		EndTime:        "13:00",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Conflicts) != 1 || verr.Conflicts[0].ErrorType != ConflictTrainer {
		t.Fatalf("expected one trainer conflict, got %+v", verr.Conflicts)
	}
	if verr.Conflicts[0].ConflictingLessonID == nil {
		t.Error("trainer conflict should reference the existing lesson")
	}
	if len(lessons.lessons) != 1 {
		t.Errorf("conflicting lesson must not be stored, have %d rows", len(lessons.lessons))
	}
}

func TestLessonService_Create_ClassroomConflict(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)
	seedModule(cms, 2, 20, uintPtr(9), 25)

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "11:00",
	}); err != nil {
		t.Fatalf("first lesson should succeed: %v", err)
	}

	// explicit override collides with the first lesson's module default
	_, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 2,
		Date:           "2026-09-07",
		StartTime:      "10:00",
		EndTime:        "12:00",
		ClassroomID:    uintPtr(7),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Conflicts) != 1 || verr.Conflicts[0].ErrorType != ConflictClassroom {
		t.Fatalf("expected one classroom conflict, got %+v", verr.Conflicts)
	}
}

func TestLessonService_Create_ClassroomNotFound(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	seedModule(cms, 1, 10, nil, 25)

	_, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "11:00",
		ClassroomID:    uintPtr(99),
	})
	if !errors.Is(err, ErrClassroomNotFound) {
		t.Fatalf("expected ErrClassroomNotFound, got %v", err)
	}
	if len(lessons.lessons) != 0 {
		t.Error("no rows should be written for a missing room")
	}
}

func TestLessonService_Create_TouchingEndpointsAllowed(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "10:00",
	}); err != nil {
		t.Fatalf("first lesson should succeed: %v", err)
	}
	// back-to-back in the same room is not a conflict
	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "10:00",
		EndTime:        "11:00",
	}); err != nil {
		t.Fatalf("back-to-back lesson should succeed: %v", err)
	}
	if len(lessons.lessons) != 2 {
		t.Errorf("expected 2 rows, got %d", len(lessons.lessons))
	}
}

// ── Create: recurring batches ──

func TestLessonService_Create_Recurring(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)

	result, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID:  1,
		Date:            "2026-09-07",
		StartTime:       "09:00",
		EndTime:         "11:00",
		IsRecurring:     true,
		RecurrenceWeeks: 4,
	})
	if err != nil {
		t.Fatalf("recurring create should succeed: %v", err)
	}
	if result.Count != 4 || len(lessons.lessons) != 4 {
		t.Fatalf("expected 4 rows, got count=%d stored=%d", result.Count, len(lessons.lessons))
	}
	// dates advance by 7 days in order
	wantDates := []string{"2026-09-07", "2026-09-14", "2026-09-21", "2026-09-28"}
	for i, l := range result.CreatedLessons {
		if l.Date != wantDates[i] {
			t.Errorf("lesson %d: expected date %s, got %s", i, wantDates[i], l.Date)
		}
	}
	if result.HoursInfo.LessonHours != 8.0 {
		t.Errorf("expected lesson_hours=8.0, got %.2f", result.HoursInfo.LessonHours)
	}
	if result.HoursInfo.ScheduledHours != 8.0 {
		t.Errorf("expected scheduled_hours=8.0, got %.2f", result.HoursInfo.ScheduledHours)
	}
}

func TestLessonService_Create_RecurringHoursExceeded(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)

	// consume 20 of the 25 hour budget, leaving 5
	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID:  1,
		Date:            "2026-09-01",
		StartTime:       "08:00",
		EndTime:         "12:00",
		IsRecurring:     true,
		RecurrenceWeeks: 5,
	}); err != nil {
		t.Fatalf("setup batch should succeed: %v", err)
	}
	before := len(lessons.lessons)

	// 3 weeks x 2h = 6h > 5h remaining
	_, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID:  1,
		Date:            "2026-10-06",
		StartTime:       "09:00",
		EndTime:         "11:00",
		IsRecurring:     true,
		RecurrenceWeeks: 3,
	})
	var herr *HoursExceededError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HoursExceededError, got %v", err)
	}
	if herr.ScheduledHours != 20.0 || herr.RequestedHours != 6.0 || herr.TotalHours != 25.0 {
		t.Errorf("unexpected figures: %+v", herr)
	}
	if len(lessons.lessons) != before {
		t.Errorf("all-or-nothing violated: row count changed from %d to %d", before, len(lessons.lessons))
	}
}

func TestLessonService_Create_BatchAbortsOnMidConflict(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 100)
	seedModule(cms, 2, 20, uintPtr(7), 100)

	// block the room on what will be week 2 of the batch
	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 2,
		Date:           "2026-09-14",
		StartTime:      "09:00",
		EndTime:        "11:00",
	}); err != nil {
		t.Fatalf("blocking lesson should succeed: %v", err)
	}
	before := len(lessons.lessons)

	_, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID:  1,
		Date:            "2026-09-07",
		StartTime:       "09:00",
		EndTime:         "11:00",
		IsRecurring:     true,
		RecurrenceWeeks: 3,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(lessons.lessons) != before {
		t.Errorf("no partial batch: row count changed from %d to %d", before, len(lessons.lessons))
	}
}

// ── Validate ──

func TestLessonService_Validate_NotFoundKind(t *testing.T) {
	svc, _, _ := setupTestLessonService()

	result, err := svc.Validate(context.Background(), &dto.ValidateLessonRequest{
		CourseModuleID: 42,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})
	if err != nil {
		t.Fatalf("Validate should not fail: %v", err)
	}
	if result.Valid {
		t.Fatal("missing module must not validate")
	}
	if len(result.Conflicts) != 1 || result.Conflicts[0].ErrorType != ConflictNotFound {
		t.Fatalf("expected single not_found conflict, got %+v", result.Conflicts)
	}
}

func TestLessonService_Validate_Idempotent(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)
	seedModule(cms, 2, 10, uintPtr(7), 25)

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "12:00",
	}); err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}

	req := &dto.ValidateLessonRequest{
		CourseModuleID: 2,
		Date:           "2026-09-07",
		StartTime:      "10:00",
		EndTime:        "11:00",
	}
	first, err := svc.Validate(context.Background(), req)
	if err != nil {
		t.Fatalf("first Validate failed: %v", err)
	}
	second, err := svc.Validate(context.Background(), req)
	if err != nil {
		t.Fatalf("second Validate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	// same room, same trainer, overlapping: both kinds reported at once
	if len(first.Conflicts) != 2 {
		t.Errorf("expected classroom and trainer conflicts together, got %+v", first.Conflicts)
	}
}

func TestLessonService_Validate_EffectiveClassroomFallback(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25) // module default room 7
	seedModule(cms, 2, 20, nil, 25)

	// lesson with no override occupies room 7 via the module default
	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "11:00",
	}); err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}

	result, err := svc.Validate(context.Background(), &dto.ValidateLessonRequest{
		CourseModuleID: 2,
		Date:           "2026-09-07",
		StartTime:      "10:00",
		EndTime:        "12:00",
		ClassroomID:    uintPtr(7),
	})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if result.Valid {
		t.Fatal("room 7 is occupied through the module default")
	}
	if result.Conflicts[0].ErrorType != ConflictClassroom {
		t.Errorf("expected classroom conflict, got %+v", result.Conflicts)
	}
}

// ── Update ──

func TestLessonService_Update_ExcludesSelf(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)

	created, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "11:00",
	})
	if err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}
	id := created.CreatedLessons[0].ID

	// shift by 30 minutes: overlaps its own old slot, which must be ignored
	newStart, newEnd := "09:30", "11:30"
	updated, err := svc.Update(context.Background(), id, &dto.UpdateLessonRequest{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if err != nil {
		t.Fatalf("Update should succeed against its own slot: %v", err)
	}
	if updated.StartTime != "09:30" || updated.EndTime != "11:30" {
		t.Errorf("patch not applied: %s-%s", updated.StartTime, updated.EndTime)
	}
}

func TestLessonService_Update_HoursConflictFatal(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 4)

	created, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "12:00",
	})
	if err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}
	id := created.CreatedLessons[0].ID

	// growing to 5h exceeds the 4h budget even with itself excluded
	newEnd := "14:00"
	_, err = svc.Update(context.Background(), id, &dto.UpdateLessonRequest{EndTime: &newEnd})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Conflicts[0].ErrorType != ConflictHours {
		t.Errorf("expected hours conflict, got %+v", verr.Conflicts)
	}

	// shrinking within budget is fine
	newEnd = "11:00"
	if _, err := svc.Update(context.Background(), id, &dto.UpdateLessonRequest{EndTime: &newEnd}); err != nil {
		t.Errorf("shrinking update should succeed: %v", err)
	}
}

func TestLessonService_Update_ClassroomNotFound(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)

	created, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "11:00",
	})
	if err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}
	id := created.CreatedLessons[0].ID

	_, err = svc.Update(context.Background(), id, &dto.UpdateLessonRequest{ClassroomID: uintPtr(99)})
	if !errors.Is(err, ErrClassroomNotFound) {
		t.Fatalf("expected ErrClassroomNotFound, got %v", err)
	}

	// lesson is unchanged
	detail, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if detail.ClassroomID != nil {
		t.Errorf("failed update must not leak the override, got %v", *detail.ClassroomID)
	}
}

func TestLessonService_Update_NotFound(t *testing.T) {
	svc, _, _ := setupTestLessonService()
	notes := "x"
	if _, err := svc.Update(context.Background(), 123, &dto.UpdateLessonRequest{Notes: &notes}); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

// ── Delete / Get ──

func TestLessonService_Delete(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	seedModule(cms, 1, 10, nil, 25)

	created, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "10:00",
	})
	if err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}
	id := created.CreatedLessons[0].ID

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if len(lessons.lessons) != 0 {
		t.Error("row should be gone")
	}
	if err := svc.Delete(context.Background(), id); !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestLessonService_Get_NotFound(t *testing.T) {
	svc, _, _ := setupTestLessonService()
	if _, err := svc.Get(context.Background(), 77); !errors.Is(err, ErrLessonNotFound) {
		t.Fatalf("expected ErrLessonNotFound, got %v", err)
	}
}

// ── Views ──

func TestLessonService_Get_EnrichedView(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)

	created, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "10:30",
		Notes:          "bring laptops",
	})
	if err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}

	detail, err := svc.Get(context.Background(), created.CreatedLessons[0].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if detail.ModuleName != "Go Fundamentals" {
		t.Errorf("expected module name, got %s", detail.ModuleName)
	}
	if detail.CourseName != "Backend Engineering 2026" {
		t.Errorf("expected course name, got %s", detail.CourseName)
	}
	if detail.TrainerName != "Maria Santos" {
		t.Errorf("expected trainer name, got %s", detail.TrainerName)
	}
	if detail.DurationHours != 1.5 {
		t.Errorf("expected duration 1.5, got %.2f", detail.DurationHours)
	}
	if detail.Notes != "bring laptops" {
		t.Errorf("notes lost: %s", detail.Notes)
	}
}

func TestLessonService_View_MissingRelationsDegrade(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	// module without display relations
	cms.modules[1] = &model.CourseModule{ID: 1, CourseID: 1, TrainerID: 10, TotalHours: 25}

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "10:00",
	}); err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}

	var id uint
	for k := range lessons.lessons {
		id = k
	}
	detail, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if detail.ModuleName != "N/A" || detail.CourseName != "N/A" || detail.TrainerName != "N/A" {
		t.Errorf("missing relations should degrade to N/A, got %+v", detail)
	}
	if detail.ClassroomName != nil {
		t.Errorf("expected no classroom name, got %v", *detail.ClassroomName)
	}
}

func TestLessonService_ListByClassroom_IncludesDefaults(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25) // default room 7
	seedModule(cms, 2, 20, nil, 25)

	// no override: occupies room 7 via default
	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "10:00",
	}); err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}
	// explicit override to room 7
	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 2,
		Date:           "2026-09-08",
		StartTime:      "09:00",
		EndTime:        "10:00",
		ClassroomID:    uintPtr(7),
	}); err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}
	// unrelated room
	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 2,
		Date:           "2026-09-09",
		StartTime:      "09:00",
		EndTime:        "10:00",
		ClassroomID:    uintPtr(3),
	}); err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}

	result, err := svc.ListByClassroom(context.Background(), 7, &dto.ClassroomScheduleRequest{})
	if err != nil {
		t.Fatalf("ListByClassroom failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 lessons for room 7, got %d", len(result))
	}
	// ordered by (date, start_time)
	if result[0].Date != "2026-09-07" || result[1].Date != "2026-09-08" {
		t.Errorf("unexpected order: %s, %s", result[0].Date, result[1].Date)
	}
}

func TestLessonService_ListByClassroom_UnknownRoom(t *testing.T) {
	svc, _, _ := setupTestLessonService()

	if _, err := svc.ListByClassroom(context.Background(), 99, &dto.ClassroomScheduleRequest{}); !errors.Is(err, ErrClassroomNotFound) {
		t.Fatalf("expected ErrClassroomNotFound, got %v", err)
	}
}

func TestLessonService_ListByClassroom_ExactDateWinsOverRange(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, uintPtr(7), 25)

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "10:00",
	}); err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}

	// the range excludes the lesson's date; the exact date must still win
	result, err := svc.ListByClassroom(context.Background(), 7, &dto.ClassroomScheduleRequest{
		Date: "2026-09-07",
		ListRangeRequest: dto.ListRangeRequest{
			StartDate: "2026-10-01",
			EndDate:   "2026-10-31",
		},
	})
	if err != nil {
		t.Fatalf("ListByClassroom failed: %v", err)
	}
	if len(result) != 1 || result[0].Date != "2026-09-07" {
		t.Fatalf("expected the exact-date lesson regardless of range, got %+v", result)
	}

	// without a date the range applies and filters everything out
	result, err = svc.ListByClassroom(context.Background(), 7, &dto.ClassroomScheduleRequest{
		ListRangeRequest: dto.ListRangeRequest{
			StartDate: "2026-10-01",
			EndDate:   "2026-10-31",
		},
	})
	if err != nil {
		t.Fatalf("ListByClassroom failed: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected no lessons in the empty range, got %d", len(result))
	}
}

func TestLessonService_ListByTrainer_Range(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, nil, 100)

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID:  1,
		Date:            "2026-09-07",
		StartTime:       "09:00",
		EndTime:         "10:00",
		IsRecurring:     true,
		RecurrenceWeeks: 4,
	}); err != nil {
		t.Fatalf("setup batch should succeed: %v", err)
	}

	result, err := svc.ListByTrainer(context.Background(), 10, &dto.ListRangeRequest{
		StartDate: "2026-09-14",
		EndDate:   "2026-09-21",
	})
	if err != nil {
		t.Fatalf("ListByTrainer failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 lessons in range, got %d", len(result))
	}
}

func TestLessonService_List_Pagination(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, nil, 100)

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID:  1,
		Date:            "2026-09-07",
		StartTime:       "09:00",
		EndTime:         "10:00",
		IsRecurring:     true,
		RecurrenceWeeks: 5,
	}); err != nil {
		t.Fatalf("setup batch should succeed: %v", err)
	}

	page, total, err := svc.List(context.Background(), &dto.LessonListRequest{
		PaginationRequest: dto.PaginationRequest{Skip: 2, Limit: 2},
	})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 {
		t.Errorf("expected total=5, got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
	if page[0].Date != "2026-09-21" {
		t.Errorf("expected third lesson first, got %s", page[0].Date)
	}
}

// ── Hours ledger ──

func TestLessonService_GetHoursInfo(t *testing.T) {
	svc, _, cms := setupTestLessonService()
	seedModule(cms, 1, 10, nil, 25)

	if _, err := svc.Create(context.Background(), &dto.CreateLessonRequest{
		CourseModuleID: 1,
		Date:           "2026-09-07",
		StartTime:      "09:00",
		EndTime:        "12:30",
	}); err != nil {
		t.Fatalf("setup lesson should succeed: %v", err)
	}

	info, err := svc.GetHoursInfo(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetHoursInfo failed: %v", err)
	}
	if info.TotalHours != 25.0 || info.ScheduledHours != 3.5 || info.RemainingHours != 21.5 {
		t.Errorf("unexpected ledger: %+v", info)
	}
	if info.WouldExceed {
		t.Error("budget is not exceeded")
	}
}

func TestLessonService_GetHoursInfo_ModuleNotFound(t *testing.T) {
	svc, _, _ := setupTestLessonService()
	if _, err := svc.GetHoursInfo(context.Background(), 5); !errors.Is(err, ErrCourseModuleNotFound) {
		t.Fatalf("expected ErrCourseModuleNotFound, got %v", err)
	}
}

// ── Budget invariant across operations ──

func TestLessonService_BudgetInvariantHolds(t *testing.T) {
	svc, lessons, cms := setupTestLessonService()
	cm := seedModule(cms, 1, 10, nil, 10)

	ops := []dto.CreateLessonRequest{
		{CourseModuleID: 1, Date: "2026-09-07", StartTime: "09:00", EndTime: "12:00"},
		{CourseModuleID: 1, Date: "2026-09-08", StartTime: "09:00", EndTime: "13:00"},
		{CourseModuleID: 1, Date: "2026-09-09", StartTime: "09:00", EndTime: "14:00"}, // would hit 12h
		{CourseModuleID: 1, Date: "2026-09-10", StartTime: "09:00", EndTime: "12:00"},
	}
	for i := range ops {
		_, _ = svc.Create(context.Background(), &ops[i])

		var sum float64
		for _, l := range lessons.lessons {
			h, err := durationHours(l.StartTime, l.EndTime)
			if err != nil {
				t.Fatalf("stored lesson has invalid interval: %v", err)
			}
			sum += h
		}
		if sum > float64(cm.TotalHours) {
			t.Fatalf("budget invariant violated after op %d: %.2f > %d", i, sum, cm.TotalHours)
		}
	}
	if len(lessons.lessons) != 3 {
		t.Errorf("expected ops 1, 2 and 4 stored, got %d rows", len(lessons.lessons))
	}
}
