package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrClassNotFound      = errors.New("class not found")
	ErrClassAlreadyExists = errors.New("a class with this name already exists")
)

// ClassDetail pairs a catalog entry with the active trainers teaching it.
type ClassDetail struct {
	Class    *domain.Class    `json:"classDetails"`
	Trainers []domain.Trainer `json:"trainers"`
}

// CatalogService exposes the class catalog.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Class, error)
	Add(ctx context.Context, class *domain.Class) (*domain.Class, error)
	// GetDetail returns the class plus every active trainer whose class set
	// includes it.
	GetDetail(ctx context.Context, id primitive.ObjectID) (*ClassDetail, error)
}

type catalogService struct {
	classRepo   repository.ClassRepository
	trainerRepo repository.TrainerRepository
}

// NewCatalogService creates a new instance of catalogService.
func NewCatalogService(classRepo repository.ClassRepository, trainerRepo repository.TrainerRepository) CatalogService {
	return &catalogService{
		classRepo:   classRepo,
		trainerRepo: trainerRepo,
	}
}

func (s *catalogService) List(ctx context.Context) ([]domain.Class, error) {
	return s.classRepo.List(ctx)
}

// Add inserts a standalone catalog entry (admin flow).
func (s *catalogService) Add(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	if class == nil || class.Name == "" {
		return nil, errors.New("class name is required")
	}
	if len(class.Intensity) == 0 {
		class.Intensity = domain.DefaultIntensity
	}

	id, err := s.classRepo.Create(ctx, class)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrClassAlreadyExists
		}
		return nil, err
	}
	class.ID = id
	return class, nil
}

// GetDetail loads the class and the active trainers teaching it.
func (s *catalogService) GetDetail(ctx context.Context, id primitive.ObjectID) (*ClassDetail, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	trainers, err := s.trainerRepo.ListActiveByClass(ctx, class.Name)
	if err != nil {
		return nil, err
	}

	return &ClassDetail{
		Class:    class,
		Trainers: trainers,
	}, nil
}
