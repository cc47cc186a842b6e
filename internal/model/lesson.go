package model

import "time"

// Lesson is one scheduled occurrence of a CourseModule on a concrete
// date/time, optionally overriding the offering's default classroom.
//
// Times are stored as "HH:MM" strings (TIME columns). The effective
// classroom of a lesson is its own ClassroomID when set, otherwise the
// owning CourseModule's default, otherwise none.
type Lesson struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CourseModuleID uint      `gorm:"not null;index" json:"course_module_id"`
	ClassroomID    *uint     `gorm:"index" json:"classroom_id,omitempty"`
	Date           time.Time `gorm:"type:date;not null;index:idx_lessons_date" json:"date"`
	StartTime      string    `gorm:"type:time;not null" json:"start_time"`
	EndTime        string    `gorm:"type:time;not null" json:"end_time"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	BaseModel

	CourseModule *CourseModule `gorm:"foreignKey:CourseModuleID" json:"course_module,omitempty"`
	Classroom    *Classroom    `gorm:"foreignKey:ClassroomID"    json:"classroom,omitempty"`
}

func (Lesson) TableName() string { return "lessons" }
