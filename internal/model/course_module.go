package model

// CourseModule binds a Module to a Course edition: the assigned trainer, the
// default classroom, the position in the curriculum and the hours budget that
// all lessons under this offering must not exceed in aggregate.
type CourseModule struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	CourseID    uint  `gorm:"not null;index" json:"course_id"`
	ModuleID    uint  `gorm:"not null" json:"module_id"`
	TrainerID   uint  `gorm:"not null;index" json:"trainer_id"`
	ClassroomID *uint `gorm:"index" json:"classroom_id,omitempty"` // default room, overridable per lesson
	Order       int   `gorm:"column:module_order;not null;default:0" json:"order"`
	TotalHours  int   `gorm:"not null;default:25" json:"total_hours"`
	BaseModel

	Course    *Course    `gorm:"foreignKey:CourseID"    json:"course,omitempty"`
	Module    *Module    `gorm:"foreignKey:ModuleID"    json:"module,omitempty"`
	Trainer   *User      `gorm:"foreignKey:TrainerID"   json:"trainer,omitempty"`
	Classroom *Classroom `gorm:"foreignKey:ClassroomID" json:"classroom,omitempty"`
}

func (CourseModule) TableName() string { return "course_modules" }
