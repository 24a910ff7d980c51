package service

import (
	"context"
	"errors"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound       = errors.New("trainer not found")
	ErrTrainerAlreadyApplied = errors.New("a trainer application already exists for this email")
	ErrInvalidTrainerStatus  = errors.New("invalid trainer status")
)

// TrainerApplication is the payload of a new trainer application.
type TrainerApplication struct {
	FullName          string
	Email             string
	Age               int
	Experience        string
	Skills            []string
	ProfileImage      string
	Social            domain.SocialLinks
	AvailableDays     []string // Day names; each becomes one slot
	AvailableTime     string
	Classes           []string
	ClassDescriptions map[string]string
	ClassEquipment    map[string][]string
	ClassDurations    map[string]string
	ClassImages       map[string]string
}

// TrainerService governs the trainer application lifecycle:
// pending -> active (promotes the linked user) or pending -> rejected
// (records feedback, keeps the document).
type TrainerService interface {
	Apply(ctx context.Context, app TrainerApplication) (*domain.Trainer, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Trainer, error)
	ListActive(ctx context.Context) ([]domain.Trainer, error)
	ListPending(ctx context.Context) ([]domain.Trainer, error)
	// ListPendingOrRejected returns every non-active application (admin
	// review screen).
	ListPendingOrRejected(ctx context.Context) ([]domain.Trainer, error)
	// UpdateStatus sets the lifecycle status; moving to active promotes the
	// linked user's role to trainer.
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainerStatus) error
	// Reject marks the application rejected and records exactly one feedback
	// entry. The trainer document is kept (soft-reject).
	Reject(ctx context.Context, id primitive.ObjectID, feedbackText string) error
	// Remove deletes the trainer document and demotes the linked user to
	// member. Irreversible; no feedback is written.
	Remove(ctx context.Context, id primitive.ObjectID) error
}

type trainerService struct {
	trainerRepo  repository.TrainerRepository
	userRepo     repository.UserRepository
	classRepo    repository.ClassRepository
	feedbackRepo repository.FeedbackRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	trainerRepo repository.TrainerRepository,
	userRepo repository.UserRepository,
	classRepo repository.ClassRepository,
	feedbackRepo repository.FeedbackRepository,
) TrainerService {
	return &trainerService{
		trainerRepo:  trainerRepo,
		userRepo:     userRepo,
		classRepo:    classRepo,
		feedbackRepo: feedbackRepo,
	}
}

// Apply stores a pending trainer application. Every declared day becomes one
// available slot with a freshly generated UUID, and every claimed class is
// merged into the catalog with a snapshot of this trainer.
func (s *trainerService) Apply(ctx context.Context, app TrainerApplication) (*domain.Trainer, error) {
	// 1. Validate Input
	if app.FullName == "" || app.Email == "" {
		return nil, errors.New("trainer full name and email are required")
	}

	// 2. Build one slot per declared day
	slots := make([]domain.Slot, len(app.AvailableDays))
	for i, day := range app.AvailableDays {
		slots[i] = domain.Slot{
			SlotID: uuid.NewString(),
			Day:    day,
			Status: domain.SlotAvailable,
		}
	}

	trainer := &domain.Trainer{
		FullName:      app.FullName,
		Email:         app.Email,
		Age:           app.Age,
		Experience:    app.Experience,
		Skills:        app.Skills,
		ProfileImage:  app.ProfileImage,
		Social:        app.Social,
		Status:        domain.TrainerPending,
		AvailableDays: slots,
		AvailableTime: app.AvailableTime,
		Classes:       app.Classes,
	}

	// 3. Insert the application
	trainerID, err := s.trainerRepo.Create(ctx, trainer)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrTrainerAlreadyApplied
		}
		return nil, err
	}
	trainer.ID = trainerID

	// 4. Merge claimed classes into the catalog
	snapshot := domain.TrainerSnapshot{
		TrainerID:     trainerID,
		Name:          trainer.FullName,
		Experience:    trainer.Experience,
		Skills:        trainer.Skills,
		Age:           trainer.Age,
		ProfileImage:  trainer.ProfileImage,
		AvailableDays: trainer.AvailableDays,
		AvailableTime: trainer.AvailableTime,
		Social:        trainer.Social,
	}
	for _, className := range app.Classes {
		class := &domain.Class{
			Name:        className,
			Description: app.ClassDescriptions[className],
			Intensity:   domain.DefaultIntensity,
			Equipment:   app.ClassEquipment[className],
			Duration:    app.ClassDurations[className],
			Image:       app.ClassImages[className],
		}
		if class.Description == "" {
			class.Description = className + " class description"
		}
		if class.Duration == "" {
			class.Duration = "60 mins"
		}
		if err := s.classRepo.UpsertByName(ctx, class, snapshot); err != nil {
			return nil, err
		}
	}

	return trainer, nil
}

// GetByID fetches one trainer.
func (s *trainerService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

// GetByEmail fetches the trainer profile linked to an account email.
func (s *trainerService) GetByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	return trainer, nil
}

func (s *trainerService) ListActive(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.ListByStatus(ctx, domain.TrainerActive)
}

func (s *trainerService) ListPending(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.ListByStatus(ctx, domain.TrainerPending)
}

func (s *trainerService) ListPendingOrRejected(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.ListByStatus(ctx, domain.TrainerPending, domain.TrainerRejected)
}

// UpdateStatus sets the trainer status and cascades the role promotion when
// the application is approved.
func (s *trainerService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainerStatus) error {
	switch status {
	case domain.TrainerPending, domain.TrainerActive, domain.TrainerRejected:
	default:
		return ErrInvalidTrainerStatus
	}

	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	if err := s.trainerRepo.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	if status == domain.TrainerActive {
		// A missing linked account leaves the trainer active; the role sync
		// happens on the account if and when it appears.
		if err := s.userRepo.SetRoleByEmail(ctx, trainer.Email, domain.RoleTrainer); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
	}
	return nil
}

// Reject soft-rejects the application and appends one feedback record.
func (s *trainerService) Reject(ctx context.Context, id primitive.ObjectID, feedbackText string) error {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	if err := s.trainerRepo.SetStatus(ctx, id, domain.TrainerRejected); err != nil {
		return err
	}

	feedback := &domain.Feedback{
		UserID:   trainer.ID,
		Email:    trainer.Email,
		Feedback: feedbackText,
		Type:     domain.FeedbackTrainerRejection,
	}
	_, err = s.feedbackRepo.Create(ctx, feedback)
	return err
}

// Remove deletes the trainer and demotes the linked account to member.
func (s *trainerService) Remove(ctx context.Context, id primitive.ObjectID) error {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	if err := s.trainerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		return err
	}

	if err := s.userRepo.SetRoleByEmail(ctx, trainer.Email, domain.RoleMember); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
