package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lectio/backend/internal/dto"
	"lectio/backend/internal/model"
	"lectio/backend/internal/repository"
)

// ClassroomService read access to classroom reference data. Rooms are
// managed by the facilities module; the scheduler only lists them so
// clients can pick a lesson override.
type ClassroomService interface {
	List(ctx context.Context) ([]dto.ClassroomResponse, error)
	Get(ctx context.Context, id uint) (*dto.ClassroomResponse, error)
}

type classroomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewClassroomService(repo *repository.Repository, logger *zap.Logger) ClassroomService {
	return &classroomService{repo: repo, logger: logger}
}

func (s *classroomService) List(ctx context.Context) ([]dto.ClassroomResponse, error) {
	rooms, err := s.repo.Classroom.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClassroomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, toClassroomResponse(&rooms[i]))
	}
	return result, nil
}

func (s *classroomService) Get(ctx context.Context, id uint) (*dto.ClassroomResponse, error) {
	room, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, err
	}
	resp := toClassroomResponse(room)
	return &resp, nil
}

func toClassroomResponse(room *model.Classroom) dto.ClassroomResponse {
	return dto.ClassroomResponse{
		ID:          room.ID,
		Name:        room.Name,
		Type:        room.Type,
		Capacity:    room.Capacity,
		IsAvailable: room.IsAvailable,
	}
}
