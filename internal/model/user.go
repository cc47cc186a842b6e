package model

// User roles.
const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleStudent = "student"
)

// User is owned by the wider school-management system; the scheduler only
// reads trainer identity and display fields.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	FullName string `gorm:"type:varchar(255)"                      json:"full_name"`
	Role     string `gorm:"type:varchar(20);not null;default:'student'" json:"role"` // admin | trainer | student
	IsActive bool   `gorm:"not null;default:true"                  json:"is_active"`
	BaseModel
}

// TableName maps to the shared users table.
func (User) TableName() string { return "users" }

// DisplayName returns the full name, falling back to email for accounts
// that never filled in a profile.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
