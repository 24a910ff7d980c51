package repository

import (
	"context"
	"time"

	"fittrack/fitness-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer. Services match on these with
// errors.Is and translate them into their own taxonomy.
var (
	ErrNotFound        = RepositoryError("not found")
	ErrConflict        = RepositoryError("conflict")
	ErrSlotUnavailable = RepositoryError("slot unavailable")
	ErrUpdateFailed    = RepositoryError("update failed")
	ErrDeleteFailed    = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// UpdateByEmail applies a partial $set-style update to the user document.
	UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) error
	SetRoleByEmail(ctx context.Context, email string, role domain.Role) error
}

// TrainerRepository defines the interface for trainer documents including
// the embedded slot sub-collection.
type TrainerRepository interface {
	Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Trainer, error)
	ListAll(ctx context.Context) ([]domain.Trainer, error)
	// ListByStatus matches any of the given statuses ($in, not stacked equality).
	ListByStatus(ctx context.Context, statuses ...domain.TrainerStatus) ([]domain.Trainer, error)
	ListActiveByClass(ctx context.Context, className string) ([]domain.Trainer, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainerStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// AppendSlots pushes new slots and class names onto the trainer matched
	// by email. Returns ErrConflict if any slot ID already exists on the
	// trainer, ErrNotFound if no trainer matches.
	AppendSlots(ctx context.Context, email string, slots []domain.Slot, classes []string, availableTime string) error
	// ReserveSlot atomically moves an available (or lapsed-reservation) slot
	// to reserved. ErrSlotUnavailable when the slot is held, ErrNotFound when
	// the (trainer, slot) pair does not exist.
	ReserveSlot(ctx context.Context, trainerID primitive.ObjectID, slotID, email string, until time.Time) error
	// ConfirmSlot marks the slot booked by email. Idempotent: a slot already
	// booked by the same email is accepted.
	ConfirmSlot(ctx context.Context, trainerID primitive.ObjectID, slotID, email string) error
	// ReleaseReservation reverts a reserved slot to available (compensation
	// for a failed gateway call or an abandoned payment).
	ReleaseReservation(ctx context.Context, trainerID primitive.ObjectID, slotID string) error
	// ReleaseExpired reverts every reservation whose deadline passed before
	// now. Returns the number of slots released.
	ReleaseExpired(ctx context.Context, now time.Time) (int64, error)
	// RemoveSlot deletes the slot entry entirely from whichever trainer owns it.
	RemoveSlot(ctx context.Context, slotID string) error
}

// ClassRepository defines the interface for the class catalog.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error)
	// UpsertByName creates the class if the name is new, otherwise appends
	// the trainer snapshot to the existing document.
	UpsertByName(ctx context.Context, class *domain.Class, snapshot domain.TrainerSnapshot) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Class, error)
	List(ctx context.Context) ([]domain.Class, error)
}

// PaymentRepository defines the interface for payment records.
type PaymentRepository interface {
	// Create returns ErrConflict when the idempotency key is already stored.
	Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
}

// FeedbackRepository defines the interface for feedback records.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Feedback, error)
}

// ReviewRepository defines the interface for member reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Review, error)
}

// ForumRepository defines the interface for forum posts.
type ForumRepository interface {
	Create(ctx context.Context, post *domain.ForumPost) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error)
	List(ctx context.Context) ([]domain.ForumPost, error)
	// IncrementVote atomically bumps the named tally field ("upvotes" or
	// "downvotes"); callers must whitelist the field name.
	IncrementVote(ctx context.Context, id primitive.ObjectID, field string) error
}

// NewsletterRepository defines the interface for newsletter subscriptions.
type NewsletterRepository interface {
	Create(ctx context.Context, sub *domain.Subscriber) (primitive.ObjectID, error)
	List(ctx context.Context) ([]domain.Subscriber, error)
}
