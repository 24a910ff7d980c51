package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/payment"
	"fittrack/fitness-tracker/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSlotNotFound    = errors.New("slot not found for this trainer")
	ErrSlotUnavailable = errors.New("slot is already reserved or booked")
	ErrDuplicateSlotID = errors.New("generated slot ID already exists on this trainer")
	ErrGatewayFailure  = errors.New("payment gateway request failed")
	ErrInvalidAmount   = errors.New("payment amount must be positive")
)

// IntentRequest is the input for creating a payment intent against a slot.
type IntentRequest struct {
	Price      float64
	TrainerID  primitive.ObjectID
	SlotID     string
	PayerEmail string
}

// IntentResult carries the gateway reference back to the client.
type IntentResult struct {
	IntentID     string
	ClientSecret string
}

// BookingService owns the slot lifecycle: adding availability, the
// reservation placed when a payment intent is created, the booking confirmed
// when the payment record lands, and the sweep of abandoned reservations.
type BookingService interface {
	// AddSlots appends one freshly-identified slot per day to the trainer
	// matched by email and extends the claimed class set.
	AddSlots(ctx context.Context, trainerEmail string, days []string, slotTime string, classes []string) error
	// ListAllSlots flattens every trainer's slots into one trainer-annotated
	// sequence.
	ListAllSlots(ctx context.Context) ([]domain.TrainerSlot, error)
	// RemoveSlot deletes a slot entry entirely (not a reset to available).
	RemoveSlot(ctx context.Context, slotID string) error

	// CreateIntent reserves the slot for the reservation TTL and asks the
	// gateway for a charge intent. A gateway failure releases the
	// reservation before the error is returned.
	CreateIntent(ctx context.Context, req IntentRequest) (*IntentResult, error)
	// ConfirmPayment marks the slot booked and persists the payment record.
	// Idempotent under retry: a key seen before returns the stored record
	// without touching the slot again.
	ConfirmPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)

	// ExpireReservations releases every reservation whose hold lapsed.
	ExpireReservations(ctx context.Context) (int64, error)
}

type bookingService struct {
	trainerRepo    repository.TrainerRepository
	paymentRepo    repository.PaymentRepository
	gateway        payment.Gateway
	currency       string
	reservationTTL time.Duration
}

// NewBookingService creates a new instance of bookingService.
func NewBookingService(
	trainerRepo repository.TrainerRepository,
	paymentRepo repository.PaymentRepository,
	gateway payment.Gateway,
	currency string,
	reservationTTL time.Duration,
) BookingService {
	if currency == "" {
		currency = "usd"
	}
	if reservationTTL <= 0 {
		reservationTTL = 15 * time.Minute
	}
	return &bookingService{
		trainerRepo:    trainerRepo,
		paymentRepo:    paymentRepo,
		gateway:        gateway,
		currency:       currency,
		reservationTTL: reservationTTL,
	}
}

// AddSlots appends new availability to an existing trainer.
func (s *bookingService) AddSlots(ctx context.Context, trainerEmail string, days []string, slotTime string, classes []string) error {
	if trainerEmail == "" || len(days) == 0 {
		return errors.New("trainer email and at least one day are required")
	}

	slots := make([]domain.Slot, len(days))
	for i, day := range days {
		slots[i] = domain.Slot{
			SlotID: uuid.NewString(),
			Day:    day,
			Status: domain.SlotAvailable,
		}
	}

	err := s.trainerRepo.AppendSlots(ctx, trainerEmail, slots, classes, slotTime)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainerNotFound
		}
		if errors.Is(err, repository.ErrConflict) {
			// A v4 UUID collision within one trainer. Treated as a hard
			// invariant violation rather than retried silently.
			return ErrDuplicateSlotID
		}
		return err
	}
	return nil
}

// ListAllSlots flattens the embedded slot arrays across all trainers.
func (s *bookingService) ListAllSlots(ctx context.Context) ([]domain.TrainerSlot, error) {
	trainers, err := s.trainerRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	allSlots := []domain.TrainerSlot{}
	for _, trainer := range trainers {
		for _, slot := range trainer.AvailableDays {
			entry := domain.TrainerSlot{
				ID:           slot.SlotID,
				TrainerID:    trainer.ID,
				TrainerName:  trainer.FullName,
				TrainerEmail: trainer.Email,
				SlotID:       slot.SlotID,
				Day:          slot.Day,
				Status:       slot.Status,
				IsBooked:     slot.IsBooked(),
			}
			if entry.Status == "" {
				entry.Status = domain.SlotAvailable
			}
			if slot.BookedBy != "" {
				bookedBy := slot.BookedBy
				entry.BookedBy = &bookedBy
			}
			allSlots = append(allSlots, entry)
		}
	}
	return allSlots, nil
}

// RemoveSlot deletes the slot entry from whichever trainer owns it.
func (s *bookingService) RemoveSlot(ctx context.Context, slotID string) error {
	if slotID == "" {
		return errors.New("slot ID is required")
	}
	err := s.trainerRepo.RemoveSlot(ctx, slotID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSlotNotFound
	}
	return err
}

// CreateIntent places a time-bounded reservation on the slot, then creates
// the gateway charge intent. The reservation precedes the gateway call so a
// slot can never be sold while its payment is in flight; a failed gateway
// call releases the hold instead of leaving the slot locked.
func (s *bookingService) CreateIntent(ctx context.Context, req IntentRequest) (*IntentResult, error) {
	// 1. Validate input
	if req.Price <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.TrainerID == primitive.NilObjectID || req.SlotID == "" || req.PayerEmail == "" {
		return nil, errors.New("trainer ID, slot ID and payer email are required")
	}

	// 2. Reserve the slot
	until := time.Now().Add(s.reservationTTL)
	err := s.trainerRepo.ReserveSlot(ctx, req.TrainerID, req.SlotID, req.PayerEmail, until)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		if errors.Is(err, repository.ErrSlotUnavailable) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	// 3. Ask the gateway for a charge intent (price is in major units)
	amountMinor := int64(math.Round(req.Price * 100))
	intent, err := s.gateway.CreateIntent(ctx, amountMinor, s.currency)
	if err != nil {
		// Compensate: the reservation must not outlive a failed intent.
		_ = s.trainerRepo.ReleaseReservation(ctx, req.TrainerID, req.SlotID)
		return nil, fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}

	return &IntentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmPayment finalizes a booking after the client completed the gateway
// payment. The idempotency key makes retries converge on one payment record
// and one slot mutation.
func (s *bookingService) ConfirmPayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	// 1. Validate input
	if p == nil || p.SlotID == "" || p.UserEmail == "" || p.TrainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID, slot ID and user email are required")
	}
	if p.IdempotencyKey == "" {
		return nil, errors.New("idempotency key is required")
	}
	if p.Currency == "" {
		p.Currency = s.currency
	}

	// 2. A key seen before resolves to the stored record, untouched slot
	existing, err := s.paymentRepo.GetByIdempotencyKey(ctx, p.IdempotencyKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3. Mark the slot booked (accepts the payer's own reservation, a still
	// available slot, or an earlier confirm by the same payer)
	err = s.trainerRepo.ConfirmSlot(ctx, p.TrainerID, p.SlotID, p.UserEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		if errors.Is(err, repository.ErrSlotUnavailable) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	// 4. Persist the payment; a concurrent retry losing the insert race
	// falls back to the record that won
	paymentID, err := s.paymentRepo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return s.paymentRepo.GetByIdempotencyKey(ctx, p.IdempotencyKey)
		}
		return nil, err
	}
	p.ID = paymentID
	return p, nil
}

// ListPayments returns every stored payment record.
func (s *bookingService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx)
}

// ExpireReservations releases reservations whose deadline passed.
func (s *bookingService) ExpireReservations(ctx context.Context) (int64, error) {
	return s.trainerRepo.ReleaseExpired(ctx, time.Now())
}

// NewIdempotencyKey generates a key for clients that did not supply one.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
