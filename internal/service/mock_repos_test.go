package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"lectio/backend/internal/model"
)

// ── Mock CourseModuleRepository ──

type mockCourseModuleRepo struct {
	modules map[uint]*model.CourseModule
}

func newMockCourseModuleRepo() *mockCourseModuleRepo {
	return &mockCourseModuleRepo{modules: make(map[uint]*model.CourseModule)}
}

func (m *mockCourseModuleRepo) GetByID(_ context.Context, id uint) (*model.CourseModule, error) {
	if cm, ok := m.modules[id]; ok {
		return cm, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseModuleRepo) ListByCourse(_ context.Context, courseID uint) ([]model.CourseModule, error) {
	var result []model.CourseModule
	for _, cm := range m.modules {
		if cm.CourseID == courseID {
			result = append(result, *cm)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result, nil
}

func (m *mockCourseModuleRepo) ListByTrainer(_ context.Context, trainerID uint) ([]model.CourseModule, error) {
	var result []model.CourseModule
	for _, cm := range m.modules {
		if cm.TrainerID == trainerID {
			result = append(result, *cm)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockCourseModuleRepo) ListIDsByDefaultClassroom(_ context.Context, classroomID uint) ([]uint, error) {
	var ids []uint
	for _, cm := range m.modules {
		if cm.ClassroomID != nil && *cm.ClassroomID == classroomID {
			ids = append(ids, cm.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// ── Mock LessonRepository ──

// mockLessonRepo emulates the preload behavior of the real repository by
// attaching course modules from the linked mockCourseModuleRepo.
type mockLessonRepo struct {
	lessons map[uint]*model.Lesson
	cms     *mockCourseModuleRepo
	nextID  uint
}

func newMockLessonRepo(cms *mockCourseModuleRepo) *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[uint]*model.Lesson), cms: cms, nextID: 1}
}

func (m *mockLessonRepo) attach(l model.Lesson) model.Lesson {
	if cm, ok := m.cms.modules[l.CourseModuleID]; ok {
		l.CourseModule = cm
		if l.ClassroomID != nil {
			l.Classroom = &model.Classroom{ID: *l.ClassroomID}
		}
	}
	return l
}

func sortLessons(lessons []model.Lesson) {
	sort.Slice(lessons, func(i, j int) bool {
		if !lessons[i].Date.Equal(lessons[j].Date) {
			return lessons[i].Date.Before(lessons[j].Date)
		}
		return lessons[i].StartTime < lessons[j].StartTime
	})
}

func (m *mockLessonRepo) BatchCreate(_ context.Context, lessons []model.Lesson) error {
	for i := range lessons {
		lessons[i].ID = m.nextID
		m.nextID++
		stored := lessons[i]
		m.lessons[stored.ID] = &stored
	}
	return nil
}

func (m *mockLessonRepo) GetByID(_ context.Context, id uint) (*model.Lesson, error) {
	if l, ok := m.lessons[id]; ok {
		attached := m.attach(*l)
		return &attached, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonRepo) List(_ context.Context, start, end *time.Time, offset, limit int) ([]model.Lesson, int64, error) {
	var result []model.Lesson
	for _, l := range m.lessons {
		if start != nil && l.Date.Before(*start) {
			continue
		}
		if end != nil && l.Date.After(*end) {
			continue
		}
		result = append(result, m.attach(*l))
	}
	sortLessons(result)
	total := int64(len(result))
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

func (m *mockLessonRepo) ListOnDate(_ context.Context, date time.Time, excludeID *uint) ([]model.Lesson, error) {
	var result []model.Lesson
	for _, l := range m.lessons {
		if !l.Date.Equal(date) {
			continue
		}
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		result = append(result, m.attach(*l))
	}
	sortLessons(result)
	return result, nil
}

func (m *mockLessonRepo) ListByCourseModule(_ context.Context, courseModuleID uint, excludeID *uint) ([]model.Lesson, error) {
	var result []model.Lesson
	for _, l := range m.lessons {
		if l.CourseModuleID != courseModuleID {
			continue
		}
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		result = append(result, *l)
	}
	sortLessons(result)
	return result, nil
}

func (m *mockLessonRepo) ListByCourseModules(_ context.Context, courseModuleIDs []uint, start, end *time.Time) ([]model.Lesson, error) {
	wanted := make(map[uint]bool, len(courseModuleIDs))
	for _, id := range courseModuleIDs {
		wanted[id] = true
	}
	var result []model.Lesson
	for _, l := range m.lessons {
		if !wanted[l.CourseModuleID] {
			continue
		}
		if start != nil && l.Date.Before(*start) {
			continue
		}
		if end != nil && l.Date.After(*end) {
			continue
		}
		result = append(result, m.attach(*l))
	}
	sortLessons(result)
	return result, nil
}

func (m *mockLessonRepo) ListByEffectiveClassroom(_ context.Context, classroomID uint, defaultModuleIDs []uint, date, start, end *time.Time) ([]model.Lesson, error) {
	defaults := make(map[uint]bool, len(defaultModuleIDs))
	for _, id := range defaultModuleIDs {
		defaults[id] = true
	}
	var result []model.Lesson
	for _, l := range m.lessons {
		explicit := l.ClassroomID != nil && *l.ClassroomID == classroomID
		byDefault := l.ClassroomID == nil && defaults[l.CourseModuleID]
		if !explicit && !byDefault {
			continue
		}
		if date != nil && !l.Date.Equal(*date) {
			continue
		}
		if start != nil && l.Date.Before(*start) {
			continue
		}
		if end != nil && l.Date.After(*end) {
			continue
		}
		result = append(result, m.attach(*l))
	}
	sortLessons(result)
	return result, nil
}

func (m *mockLessonRepo) Update(_ context.Context, lesson *model.Lesson) error {
	if _, ok := m.lessons[lesson.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *lesson
	stored.CourseModule = nil
	stored.Classroom = nil
	m.lessons[lesson.ID] = &stored
	return nil
}

func (m *mockLessonRepo) Delete(_ context.Context, id uint) error {
	delete(m.lessons, id)
	return nil
}

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	rooms map[uint]*model.Classroom
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{rooms: make(map[uint]*model.Classroom)}
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id uint) (*model.Classroom, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) List(_ context.Context) ([]model.Classroom, error) {
	var result []model.Classroom
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[uint]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TrainerAvailabilityRepository ──

type mockAvailabilityRepo struct {
	slots  map[uint]*model.TrainerAvailability
	nextID uint
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{slots: make(map[uint]*model.TrainerAvailability), nextID: 1}
}

func (m *mockAvailabilityRepo) Create(_ context.Context, slot *model.TrainerAvailability) error {
	slot.ID = m.nextID
	m.nextID++
	stored := *slot
	m.slots[stored.ID] = &stored
	return nil
}

func (m *mockAvailabilityRepo) GetByID(_ context.Context, id uint) (*model.TrainerAvailability, error) {
	if s, ok := m.slots[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRepo) ListByTrainer(_ context.Context, trainerID uint) ([]model.TrainerAvailability, error) {
	var result []model.TrainerAvailability
	for _, s := range m.slots {
		if s.TrainerID == trainerID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockAvailabilityRepo) Update(_ context.Context, slot *model.TrainerAvailability) error {
	if _, ok := m.slots[slot.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *slot
	m.slots[slot.ID] = &stored
	return nil
}

func (m *mockAvailabilityRepo) Delete(_ context.Context, id uint) error {
	delete(m.slots, id)
	return nil
}
