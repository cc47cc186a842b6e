package model

// Module is the abstract curricular unit ("Databases", "Technical English").
// Immutable template data; occurrences in courses live in CourseModule.
type Module struct {
	ID                   uint   `gorm:"primaryKey" json:"id"`
	Name                 string `gorm:"type:varchar(255);not null;index" json:"name"`
	Area                 string `gorm:"type:varchar(100)" json:"area,omitempty"`
	DefaultDurationHours int    `gorm:"not null;default:25" json:"default_duration_hours"`
	BaseModel
}

func (Module) TableName() string { return "modules" }
