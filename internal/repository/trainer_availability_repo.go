package repository

import (
	"context"

	"gorm.io/gorm"

	"lectio/backend/internal/model"
)

// TrainerAvailabilityRepository trainer availability data access interface.
type TrainerAvailabilityRepository interface {
	Create(ctx context.Context, slot *model.TrainerAvailability) error
	GetByID(ctx context.Context, id uint) (*model.TrainerAvailability, error)
	ListByTrainer(ctx context.Context, trainerID uint) ([]model.TrainerAvailability, error)
	Update(ctx context.Context, slot *model.TrainerAvailability) error
	Delete(ctx context.Context, id uint) error
}

type trainerAvailabilityRepo struct {
	db *gorm.DB
}

func NewTrainerAvailabilityRepo(db *gorm.DB) TrainerAvailabilityRepository {
	return &trainerAvailabilityRepo{db: db}
}

func (r *trainerAvailabilityRepo) Create(ctx context.Context, slot *model.TrainerAvailability) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *trainerAvailabilityRepo) GetByID(ctx context.Context, id uint) (*model.TrainerAvailability, error) {
	var slot model.TrainerAvailability
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *trainerAvailabilityRepo) ListByTrainer(ctx context.Context, trainerID uint) ([]model.TrainerAvailability, error) {
	var slots []model.TrainerAvailability
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("day_of_week ASC NULLS LAST, specific_date ASC NULLS LAST, start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *trainerAvailabilityRepo) Update(ctx context.Context, slot *model.TrainerAvailability) error {
	return r.db.WithContext(ctx).
		Model(&model.TrainerAvailability{}).
		Where("id = ?", slot.ID).
		Updates(map[string]interface{}{
			"day_of_week":   slot.DayOfWeek,
			"start_time":    slot.StartTime,
			"end_time":      slot.EndTime,
			"is_recurring":  slot.IsRecurring,
			"specific_date": slot.SpecificDate,
		}).Error
}

func (r *trainerAvailabilityRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TrainerAvailability{}).Error
}
