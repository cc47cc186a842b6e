package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lectio/backend/internal/dto"
	"lectio/backend/internal/model"
	"lectio/backend/internal/repository"
)

// ── availability errors ──

var (
	ErrAvailabilityNotFound = errors.New("availability slot not found")
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrAvailabilityNoAnchor = errors.New("availability needs a day of week or a specific date")
)

// AvailabilityService trainer availability windows. A window is either
// weekly recurring (day of week) or bound to a single date.
type AvailabilityService interface {
	Create(ctx context.Context, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	ListByTrainer(ctx context.Context, trainerID uint) ([]dto.AvailabilityResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	Delete(ctx context.Context, id uint) error
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

func (s *availabilityService) Create(ctx context.Context, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if _, err := s.repo.User.GetByID(ctx, req.TrainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if _, err := durationHours(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if req.DayOfWeek == nil && req.SpecificDate == nil {
		return nil, ErrAvailabilityNoAnchor
	}

	slot := model.TrainerAvailability{
		TrainerID:   req.TrainerID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   normalizeClock(req.StartTime),
		EndTime:     normalizeClock(req.EndTime),
		IsRecurring: req.SpecificDate == nil,
	}
	if req.IsRecurring != nil {
		slot.IsRecurring = *req.IsRecurring
	}
	if req.SpecificDate != nil {
		d, err := parseDate(*req.SpecificDate)
		if err != nil {
			return nil, err
		}
		slot.SpecificDate = &d
	}

	if err := s.repo.TrainerAvailability.Create(ctx, &slot); err != nil {
		s.logger.Error("availability create failed", zap.Error(err))
		return nil, err
	}
	resp := toAvailabilityResponse(&slot)
	return &resp, nil
}

func (s *availabilityService) ListByTrainer(ctx context.Context, trainerID uint) ([]dto.AvailabilityResponse, error) {
	slots, err := s.repo.TrainerAvailability.ListByTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AvailabilityResponse, 0, len(slots))
	for i := range slots {
		result = append(result, toAvailabilityResponse(&slots[i]))
	}
	return result, nil
}

func (s *availabilityService) Update(ctx context.Context, id uint, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	slot, err := s.repo.TrainerAvailability.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}

	if req.DayOfWeek != nil {
		slot.DayOfWeek = req.DayOfWeek
	}
	if req.StartTime != nil {
		slot.StartTime = normalizeClock(*req.StartTime)
	}
	if req.EndTime != nil {
		slot.EndTime = normalizeClock(*req.EndTime)
	}
	if req.IsRecurring != nil {
		slot.IsRecurring = *req.IsRecurring
	}
	if req.SpecificDate != nil {
		d, err := parseDate(*req.SpecificDate)
		if err != nil {
			return nil, err
		}
		slot.SpecificDate = &d
	}
	if _, err := durationHours(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}

	if err := s.repo.TrainerAvailability.Update(ctx, slot); err != nil {
		s.logger.Error("availability update failed", zap.Uint("slotID", id), zap.Error(err))
		return nil, err
	}
	resp := toAvailabilityResponse(slot)
	return &resp, nil
}

func (s *availabilityService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.TrainerAvailability.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvailabilityNotFound
		}
		return err
	}
	return s.repo.TrainerAvailability.Delete(ctx, id)
}

func toAvailabilityResponse(slot *model.TrainerAvailability) dto.AvailabilityResponse {
	resp := dto.AvailabilityResponse{
		ID:          slot.ID,
		TrainerID:   slot.TrainerID,
		DayOfWeek:   slot.DayOfWeek,
		StartTime:   normalizeClock(slot.StartTime),
		EndTime:     normalizeClock(slot.EndTime),
		IsRecurring: slot.IsRecurring,
		CreatedAt:   slot.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   slot.UpdatedAt.Format(time.RFC3339),
	}
	if slot.SpecificDate != nil {
		d := formatDate(*slot.SpecificDate)
		resp.SpecificDate = &d
	}
	return resp
}
