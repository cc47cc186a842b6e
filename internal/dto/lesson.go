package dto

// ── lesson requests ──

// CreateLessonRequest single or recurring lesson creation.
// When IsRecurring is set, RecurrenceWeeks consecutive weekly lessons are
// created starting at Date, all-or-nothing.
type CreateLessonRequest struct {
	CourseModuleID  uint   `json:"course_module_id" binding:"required"`
	Date            string `json:"date"             binding:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time"       binding:"required"`
	EndTime         string `json:"end_time"         binding:"required"`
	ClassroomID     *uint  `json:"classroom_id"`
	Notes           string `json:"notes"            binding:"omitempty,max=1000"`
	IsRecurring     bool   `json:"is_recurring"`
	RecurrenceWeeks int    `json:"recurrence_weeks" binding:"omitempty,min=1,max=52"`
}

// UpdateLessonRequest patch-style lesson update; nil fields keep their value.
type UpdateLessonRequest struct {
	Date        *string `json:"date"       binding:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	ClassroomID *uint   `json:"classroom_id"`
	Notes       *string `json:"notes"      binding:"omitempty,max=1000"`
}

// ValidateLessonRequest dry-run conflict check for a prospective lesson.
type ValidateLessonRequest struct {
	CourseModuleID  uint   `json:"course_module_id" binding:"required"`
	Date            string `json:"date"             binding:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time"       binding:"required"`
	EndTime         string `json:"end_time"         binding:"required"`
	ClassroomID     *uint  `json:"classroom_id"`
	ExcludeLessonID *uint  `json:"exclude_lesson_id"`
}

// LessonListRequest query parameters for the lesson list endpoint.
type LessonListRequest struct {
	ListRangeRequest
	PaginationRequest
}

// ClassroomScheduleRequest query parameters for the by-classroom view.
type ClassroomScheduleRequest struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	ListRangeRequest
}

// ── lesson responses ──

// LessonResponse raw lesson record.
type LessonResponse struct {
	ID             uint   `json:"id"`
	CourseModuleID uint   `json:"course_module_id"`
	ClassroomID    *uint  `json:"classroom_id,omitempty"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	Notes          string `json:"notes,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// LessonDetailResponse lesson enriched with names resolved through the
// course module, plus the effective classroom and computed duration.
type LessonDetailResponse struct {
	LessonResponse
	ModuleName    string  `json:"module_name"`
	CourseName    string  `json:"course_name"`
	TrainerName   string  `json:"trainer_name"`
	ClassroomName *string `json:"classroom_name,omitempty"`
	DurationHours float64 `json:"duration_hours"`
}

// LessonConflict one validation failure for a prospective lesson.
// ErrorType is one of not_found, classroom, trainer, hours.
type LessonConflict struct {
	ErrorType           string `json:"error_type"`
	Message             string `json:"message"`
	ConflictingLessonID *uint  `json:"conflicting_lesson_id,omitempty"`
}

// ValidateLessonResponse dry-run validation result.
type ValidateLessonResponse struct {
	Valid     bool             `json:"valid"`
	Conflicts []LessonConflict `json:"conflicts,omitempty"`
}

// HoursInfoResponse hours ledger snapshot for a course module. LessonHours
// is the amount added by the operation that produced the snapshot; zero for
// a plain query.
type HoursInfoResponse struct {
	CourseModuleID uint    `json:"course_module_id"`
	TotalHours     float64 `json:"total_hours"`
	ScheduledHours float64 `json:"scheduled_hours"`
	RemainingHours float64 `json:"remaining_hours"`
	LessonHours    float64 `json:"lesson_hours"`
	WouldExceed    bool    `json:"would_exceed"`
}

// CreateLessonsResponse result of a create call; CreatedLessons holds one
// entry for a single lesson and one per week for a recurring batch.
type CreateLessonsResponse struct {
	CreatedLessons []LessonDetailResponse `json:"created_lessons"`
	Count          int                    `json:"count"`
	HoursInfo      *HoursInfoResponse     `json:"hours_info,omitempty"`
}
