package model

import "time"

// Course is one edition of a training program. Reference data for the
// scheduler; its lifecycle is managed elsewhere.
type Course struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Status    string     `gorm:"type:varchar(20);not null;default:'planned'" json:"status"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	BaseModel
}

func (Course) TableName() string { return "courses" }
