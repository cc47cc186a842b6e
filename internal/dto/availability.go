package dto

// ── trainer availability ──

// CreateAvailabilityRequest one availability window for a trainer, either
// weekly (DayOfWeek set) or for a single date (SpecificDate set).
type CreateAvailabilityRequest struct {
	TrainerID    uint    `json:"trainer_id"    binding:"required"`
	DayOfWeek    *int    `json:"day_of_week"   binding:"omitempty,min=1,max=7"`
	StartTime    string  `json:"start_time"    binding:"required"`
	EndTime      string  `json:"end_time"      binding:"required"`
	IsRecurring  *bool   `json:"is_recurring"`
	SpecificDate *string `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateAvailabilityRequest patch-style availability update.
type UpdateAvailabilityRequest struct {
	DayOfWeek    *int    `json:"day_of_week"   binding:"omitempty,min=1,max=7"`
	StartTime    *string `json:"start_time"`
	EndTime      *string `json:"end_time"`
	IsRecurring  *bool   `json:"is_recurring"`
	SpecificDate *string `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
}

// AvailabilityResponse availability window record.
type AvailabilityResponse struct {
	ID           uint    `json:"id"`
	TrainerID    uint    `json:"trainer_id"`
	DayOfWeek    *int    `json:"day_of_week,omitempty"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	IsRecurring  bool    `json:"is_recurring"`
	SpecificDate *string `json:"specific_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
