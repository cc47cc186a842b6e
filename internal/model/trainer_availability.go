package model

import "time"

// TrainerAvailability is a window in which a trainer can teach: either a
// weekly recurring pattern (day_of_week) or a single specific date.
type TrainerAvailability struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TrainerID    uint       `gorm:"not null;index" json:"trainer_id"`
	DayOfWeek    *int       `json:"day_of_week,omitempty"` // 1=Sunday .. 7=Saturday
	StartTime    string     `gorm:"type:time;not null" json:"start_time"`
	EndTime      string     `gorm:"type:time;not null" json:"end_time"`
	IsRecurring  bool       `gorm:"not null;default:true" json:"is_recurring"`
	SpecificDate *time.Time `gorm:"type:date" json:"specific_date,omitempty"`
	BaseModel

	Trainer *User `gorm:"foreignKey:TrainerID" json:"trainer,omitempty"`
}

func (TrainerAvailability) TableName() string { return "trainer_availability" }
