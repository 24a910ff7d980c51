package service

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/payment"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes mirroring the Mongo implementations' error
// semantics (ErrNotFound, ErrConflict, ErrSlotUnavailable).

// --- fakeUserRepo ---

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, exists := r.users[user.Email]; exists {
		return primitive.NilObjectID, repository.ErrConflict
	}
	u := *user
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	r.users[u.Email] = &u
	return u.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) UpdateByEmail(ctx context.Context, email string, fields map[string]interface{}) error {
	u, ok := r.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	if name, ok := fields["name"].(string); ok {
		u.Name = name
	}
	if photo, ok := fields["photoURL"].(string); ok {
		u.PhotoURL = photo
	}
	return nil
}

func (r *fakeUserRepo) SetRoleByEmail(ctx context.Context, email string, role domain.Role) error {
	u, ok := r.users[email]
	if !ok {
		return repository.ErrNotFound
	}
	u.Role = role
	return nil
}

// --- fakeTrainerRepo ---

type fakeTrainerRepo struct {
	trainers map[primitive.ObjectID]*domain.Trainer
}

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{trainers: make(map[primitive.ObjectID]*domain.Trainer)}
}

func (r *fakeTrainerRepo) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	for _, t := range r.trainers {
		if t.Email == trainer.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	t := *trainer
	t.ID = primitive.NewObjectID()
	t.CreatedAt = time.Now()
	r.trainers[t.ID] = &t
	return t.ID, nil
}

func (r *fakeTrainerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTrainerRepo) GetByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	for _, t := range r.trainers {
		if t.Email == email {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTrainerRepo) ListAll(ctx context.Context) ([]domain.Trainer, error) {
	out := []domain.Trainer{}
	for _, t := range r.trainers {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTrainerRepo) ListByStatus(ctx context.Context, statuses ...domain.TrainerStatus) ([]domain.Trainer, error) {
	out := []domain.Trainer{}
	for _, t := range r.trainers {
		for _, s := range statuses {
			if t.Status == s {
				out = append(out, *t)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTrainerRepo) ListActiveByClass(ctx context.Context, className string) ([]domain.Trainer, error) {
	out := []domain.Trainer{}
	for _, t := range r.trainers {
		if t.Status != domain.TrainerActive {
			continue
		}
		for _, c := range t.Classes {
			if c == className {
				out = append(out, *t)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTrainerRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainerStatus) error {
	t, ok := r.trainers[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTrainerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.trainers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.trainers, id)
	return nil
}

func (r *fakeTrainerRepo) AppendSlots(ctx context.Context, email string, slots []domain.Slot, classes []string, availableTime string) error {
	var trainer *domain.Trainer
	for _, t := range r.trainers {
		if t.Email == email {
			trainer = t
			break
		}
	}
	if trainer == nil {
		return repository.ErrNotFound
	}
	for _, s := range slots {
		if trainer.FindSlot(s.SlotID) != nil {
			return repository.ErrConflict
		}
	}
	trainer.AvailableDays = append(trainer.AvailableDays, slots...)
	trainer.Classes = append(trainer.Classes, classes...)
	if availableTime != "" {
		trainer.AvailableTime = availableTime
	}
	return nil
}

func (r *fakeTrainerRepo) ReserveSlot(ctx context.Context, trainerID primitive.ObjectID, slotID, email string, until time.Time) error {
	t, ok := r.trainers[trainerID]
	if !ok {
		return repository.ErrNotFound
	}
	slot := t.FindSlot(slotID)
	if slot == nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	if slot.Status != "" && slot.Status != domain.SlotAvailable && !slot.ReservationExpired(now) {
		return repository.ErrSlotUnavailable
	}
	slot.Status = domain.SlotReserved
	slot.ReservedBy = email
	slot.ReservedUntil = &until
	return nil
}

func (r *fakeTrainerRepo) ConfirmSlot(ctx context.Context, trainerID primitive.ObjectID, slotID, email string) error {
	t, ok := r.trainers[trainerID]
	if !ok {
		return repository.ErrNotFound
	}
	slot := t.FindSlot(slotID)
	if slot == nil {
		return repository.ErrNotFound
	}
	switch {
	case slot.Status == "" || slot.Status == domain.SlotAvailable:
	case slot.Status == domain.SlotReserved && slot.ReservedBy == email:
	case slot.Status == domain.SlotBooked && slot.BookedBy == email:
	default:
		return repository.ErrSlotUnavailable
	}
	slot.Status = domain.SlotBooked
	slot.BookedBy = email
	slot.ReservedBy = ""
	slot.ReservedUntil = nil
	return nil
}

func (r *fakeTrainerRepo) ReleaseReservation(ctx context.Context, trainerID primitive.ObjectID, slotID string) error {
	t, ok := r.trainers[trainerID]
	if !ok {
		return repository.ErrNotFound
	}
	slot := t.FindSlot(slotID)
	if slot == nil {
		return repository.ErrNotFound
	}
	if slot.Status == domain.SlotReserved {
		slot.Status = domain.SlotAvailable
		slot.ReservedBy = ""
		slot.ReservedUntil = nil
	}
	return nil
}

func (r *fakeTrainerRepo) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	var released int64
	for _, t := range r.trainers {
		for i := range t.AvailableDays {
			slot := &t.AvailableDays[i]
			if slot.ReservationExpired(now) {
				slot.Status = domain.SlotAvailable
				slot.ReservedBy = ""
				slot.ReservedUntil = nil
				released++
			}
		}
	}
	return released, nil
}

func (r *fakeTrainerRepo) RemoveSlot(ctx context.Context, slotID string) error {
	for _, t := range r.trainers {
		for i := range t.AvailableDays {
			if t.AvailableDays[i].SlotID == slotID {
				t.AvailableDays = append(t.AvailableDays[:i], t.AvailableDays[i+1:]...)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

// --- fakeClassRepo ---

type fakeClassRepo struct {
	classes map[primitive.ObjectID]*domain.Class
}

func newFakeClassRepo() *fakeClassRepo {
	return &fakeClassRepo{classes: make(map[primitive.ObjectID]*domain.Class)}
}

func (r *fakeClassRepo) Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error) {
	for _, c := range r.classes {
		if c.Name == class.Name {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	c := *class
	c.ID = primitive.NewObjectID()
	r.classes[c.ID] = &c
	return c.ID, nil
}

func (r *fakeClassRepo) UpsertByName(ctx context.Context, class *domain.Class, snapshot domain.TrainerSnapshot) error {
	for _, c := range r.classes {
		if c.Name == class.Name {
			c.SpecializedTrainers = append(c.SpecializedTrainers, snapshot)
			return nil
		}
	}
	c := *class
	c.ID = primitive.NewObjectID()
	c.SpecializedTrainers = []domain.TrainerSnapshot{snapshot}
	r.classes[c.ID] = &c
	return nil
}

func (r *fakeClassRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeClassRepo) List(ctx context.Context) ([]domain.Class, error) {
	out := []domain.Class{}
	for _, c := range r.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeClassRepo) getByName(name string) *domain.Class {
	for _, c := range r.classes {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// --- fakePaymentRepo ---

type fakePaymentRepo struct {
	payments []*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{}
}

func (r *fakePaymentRepo) Create(ctx context.Context, p *domain.Payment) (primitive.ObjectID, error) {
	for _, existing := range r.payments {
		if existing.IdempotencyKey == p.IdempotencyKey {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	copied := *p
	copied.ID = primitive.NewObjectID()
	r.payments = append(r.payments, &copied)
	return copied.ID, nil
}

func (r *fakePaymentRepo) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	for _, p := range r.payments {
		if p.IdempotencyKey == key {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePaymentRepo) List(ctx context.Context) ([]domain.Payment, error) {
	out := []domain.Payment{}
	for _, p := range r.payments {
		out = append(out, *p)
	}
	return out, nil
}

// --- fakeFeedbackRepo ---

type fakeFeedbackRepo struct {
	feedback []*domain.Feedback
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{}
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, f *domain.Feedback) (primitive.ObjectID, error) {
	copied := *f
	copied.ID = primitive.NewObjectID()
	copied.CreatedAt = time.Now()
	r.feedback = append(r.feedback, &copied)
	return copied.ID, nil
}

func (r *fakeFeedbackRepo) GetByEmail(ctx context.Context, email string) (*domain.Feedback, error) {
	for i := len(r.feedback) - 1; i >= 0; i-- {
		if r.feedback[i].Email == email {
			copied := *r.feedback[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// --- fakeForumRepo ---

type fakeForumRepo struct {
	posts map[primitive.ObjectID]*domain.ForumPost
}

func newFakeForumRepo() *fakeForumRepo {
	return &fakeForumRepo{posts: make(map[primitive.ObjectID]*domain.ForumPost)}
}

func (r *fakeForumRepo) Create(ctx context.Context, post *domain.ForumPost) (primitive.ObjectID, error) {
	p := *post
	p.ID = primitive.NewObjectID()
	r.posts[p.ID] = &p
	return p.ID, nil
}

func (r *fakeForumRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeForumRepo) List(ctx context.Context) ([]domain.ForumPost, error) {
	out := []domain.ForumPost{}
	for _, p := range r.posts {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeForumRepo) IncrementVote(ctx context.Context, id primitive.ObjectID, field string) error {
	p, ok := r.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	switch field {
	case "upvotes":
		p.Upvotes++
	case "downvotes":
		p.Downvotes++
	}
	return nil
}

// --- fakeReviewRepo ---

type fakeReviewRepo struct {
	reviews []*domain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{}
}

func (r *fakeReviewRepo) Create(ctx context.Context, review *domain.Review) (primitive.ObjectID, error) {
	copied := *review
	copied.ID = primitive.NewObjectID()
	r.reviews = append(r.reviews, &copied)
	return copied.ID, nil
}

func (r *fakeReviewRepo) List(ctx context.Context) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rev := range r.reviews {
		out = append(out, *rev)
	}
	return out, nil
}

// --- fakeNewsletterRepo ---

type fakeNewsletterRepo struct {
	subs []*domain.Subscriber
}

func newFakeNewsletterRepo() *fakeNewsletterRepo {
	return &fakeNewsletterRepo{}
}

func (r *fakeNewsletterRepo) Create(ctx context.Context, sub *domain.Subscriber) (primitive.ObjectID, error) {
	copied := *sub
	copied.ID = primitive.NewObjectID()
	r.subs = append(r.subs, &copied)
	return copied.ID, nil
}

func (r *fakeNewsletterRepo) List(ctx context.Context) ([]domain.Subscriber, error) {
	out := []domain.Subscriber{}
	for _, s := range r.subs {
		out = append(out, *s)
	}
	return out, nil
}

// --- fakeGateway ---

type fakeGateway struct {
	calls   int
	failErr error
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string) (*payment.Intent, error) {
	g.calls++
	if g.failErr != nil {
		return nil, g.failErr
	}
	return &payment.Intent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
	}, nil
}

var errGatewayDown = errors.New("gateway unreachable")
