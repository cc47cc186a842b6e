package model

// Classroom is a physical room. The scheduler references it by id and name;
// capacity and availability are managed by the facilities module.
type Classroom struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Type        string `gorm:"type:varchar(100)" json:"type,omitempty"`
	Capacity    int    `gorm:"not null;default:20" json:"capacity"`
	IsAvailable bool   `gorm:"not null;default:true" json:"is_available"`
	BaseModel
}

func (Classroom) TableName() string { return "classrooms" }
