package mongo

import (
	"context"
	"errors"
	"time"

	"fittrack/fitness-tracker/internal/domain"
	"fittrack/fitness-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const trainerCollectionName = "trainers"

// mongoTrainerRepository implements repository.TrainerRepository.
// Slots live as an embedded array on the trainer document, so every slot
// mutation is a single-document (and therefore atomic) update.
type mongoTrainerRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainerRepository creates a new Trainer repository backed by MongoDB.
func NewMongoTrainerRepository(db *mongo.Database) repository.TrainerRepository {
	return &mongoTrainerRepository{
		collection: db.Collection(trainerCollectionName),
	}
}

// Create inserts a new trainer application.
func (r *mongoTrainerRepository) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	if trainer.Email == "" || trainer.FullName == "" {
		return primitive.NilObjectID, errors.New("trainer email and full name are required")
	}

	trainer.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, trainer)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a trainer by its ID.
func (r *mongoTrainerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	var trainer domain.Trainer
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// GetByEmail retrieves a trainer profile by the linked account email.
func (r *mongoTrainerRepository) GetByEmail(ctx context.Context, email string) (*domain.Trainer, error) {
	var trainer domain.Trainer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&trainer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &trainer, nil
}

// ListAll retrieves every trainer document regardless of status.
func (r *mongoTrainerRepository) ListAll(ctx context.Context) ([]domain.Trainer, error) {
	return r.list(ctx, bson.M{})
}

// ListByStatus retrieves trainers whose status matches any of the given
// values. An explicit $in keeps "pending or rejected" a real OR instead of
// two equality filters collapsing onto one key.
func (r *mongoTrainerRepository) ListByStatus(ctx context.Context, statuses ...domain.TrainerStatus) ([]domain.Trainer, error) {
	if len(statuses) == 0 {
		return []domain.Trainer{}, nil
	}
	return r.list(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

// ListActiveByClass retrieves active trainers teaching the named class.
func (r *mongoTrainerRepository) ListActiveByClass(ctx context.Context, className string) ([]domain.Trainer, error) {
	filter := bson.M{
		"classes": className,
		"status":  domain.TrainerActive,
	}
	return r.list(ctx, filter)
}

func (r *mongoTrainerRepository) list(ctx context.Context, filter bson.M) ([]domain.Trainer, error) {
	var trainers []domain.Trainer

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return trainers, nil
}

// SetStatus updates the lifecycle status of a trainer application.
func (r *mongoTrainerRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.TrainerStatus) error {
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the trainer document entirely.
func (r *mongoTrainerRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AppendSlots pushes new slot entries and class names onto the trainer
// matched by email. The filter refuses to match when any of the new slot IDs
// is already present, so an ID collision surfaces as ErrConflict instead of
// a silent duplicate.
func (r *mongoTrainerRepository) AppendSlots(ctx context.Context, email string, slots []domain.Slot, classes []string, availableTime string) error {
	ids := make([]string, len(slots))
	for i, s := range slots {
		ids[i] = s.SlotID
	}

	filter := bson.M{
		"email":               email,
		"availableDays.slotId": bson.M{"$nin": ids},
	}

	push := bson.M{"availableDays": bson.M{"$each": slots}}
	if len(classes) > 0 {
		push["classes"] = bson.M{"$each": classes}
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	if availableTime != "" {
		set["availableTime"] = availableTime
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$push": push, "$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish "no such trainer" from "slot ID collision".
		if _, err := r.GetByEmail(ctx, email); err != nil {
			return err
		}
		return repository.ErrConflict
	}
	return nil
}

// ReserveSlot atomically flips one slot from available (or a lapsed
// reservation) to reserved. The whole precondition lives in the filter, so
// concurrent reservations of the same slot cannot both match.
func (r *mongoTrainerRepository) ReserveSlot(ctx context.Context, trainerID primitive.ObjectID, slotID, email string, until time.Time) error {
	now := time.Now().UTC()
	filter := bson.M{
		"_id": trainerID,
		"availableDays": bson.M{"$elemMatch": bson.M{
			"slotId": slotID,
			"$or": []bson.M{
				{"status": domain.SlotAvailable},
				{"status": bson.M{"$exists": false}},
				{"status": domain.SlotReserved, "reservedUntil": bson.M{"$lt": now}},
			},
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"availableDays.$.status":        domain.SlotReserved,
			"availableDays.$.reservedBy":    email,
			"availableDays.$.reservedUntil": until.UTC(),
			"updatedAt":                     now,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return r.classifySlotMiss(ctx, trainerID, slotID)
	}
	return nil
}

// ConfirmSlot marks the slot booked by the given email. A slot reserved by
// the same payer, still available (direct confirmation without a prior
// intent), or already booked by the same payer all match, which makes the
// call safe to retry.
func (r *mongoTrainerRepository) ConfirmSlot(ctx context.Context, trainerID primitive.ObjectID, slotID, email string) error {
	filter := bson.M{
		"_id": trainerID,
		"availableDays": bson.M{"$elemMatch": bson.M{
			"slotId": slotID,
			"$or": []bson.M{
				{"status": domain.SlotAvailable},
				{"status": bson.M{"$exists": false}},
				{"status": domain.SlotReserved, "reservedBy": email},
				{"status": domain.SlotBooked, "bookedBy": email},
			},
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"availableDays.$.status":   domain.SlotBooked,
			"availableDays.$.bookedBy": email,
			"updatedAt":                time.Now().UTC(),
		},
		"$unset": bson.M{
			"availableDays.$.reservedBy":    "",
			"availableDays.$.reservedUntil": "",
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return r.classifySlotMiss(ctx, trainerID, slotID)
	}
	return nil
}

// ReleaseReservation reverts a reserved slot back to available. Booked slots
// are left untouched.
func (r *mongoTrainerRepository) ReleaseReservation(ctx context.Context, trainerID primitive.ObjectID, slotID string) error {
	filter := bson.M{
		"_id": trainerID,
		"availableDays": bson.M{"$elemMatch": bson.M{
			"slotId": slotID,
			"status": domain.SlotReserved,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"availableDays.$.status": domain.SlotAvailable,
			"updatedAt":              time.Now().UTC(),
		},
		"$unset": bson.M{
			"availableDays.$.reservedBy":    "",
			"availableDays.$.reservedUntil": "",
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReleaseExpired sweeps every trainer document and reverts reservations
// whose deadline passed. Uses an array filter so all lapsed entries in one
// document are handled in a single update.
func (r *mongoTrainerRepository) ReleaseExpired(ctx context.Context, now time.Time) (int64, error) {
	now = now.UTC()
	filter := bson.M{
		"availableDays": bson.M{"$elemMatch": bson.M{
			"status":        domain.SlotReserved,
			"reservedUntil": bson.M{"$lt": now},
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"availableDays.$[lapsed].status": domain.SlotAvailable,
			"updatedAt":                      now,
		},
		"$unset": bson.M{
			"availableDays.$[lapsed].reservedBy":    "",
			"availableDays.$[lapsed].reservedUntil": "",
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{
			"lapsed.status":        domain.SlotReserved,
			"lapsed.reservedUntil": bson.M{"$lt": now},
		}},
	})

	result, err := r.collection.UpdateMany(ctx, filter, update, opts)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// RemoveSlot pulls the slot entry out of whichever trainer owns it.
// Deliberately a deletion, not a reset to available.
func (r *mongoTrainerRepository) RemoveSlot(ctx context.Context, slotID string) error {
	filter := bson.M{"availableDays.slotId": slotID}
	update := bson.M{
		"$pull": bson.M{"availableDays": bson.M{"slotId": slotID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// classifySlotMiss decides why a conditional slot update matched nothing:
// missing trainer/slot maps to ErrNotFound, an existing but held slot to
// ErrSlotUnavailable.
func (r *mongoTrainerRepository) classifySlotMiss(ctx context.Context, trainerID primitive.ObjectID, slotID string) error {
	trainer, err := r.GetByID(ctx, trainerID)
	if err != nil {
		return err
	}
	if trainer.FindSlot(slotID) == nil {
		return repository.ErrNotFound
	}
	return repository.ErrSlotUnavailable
}

// EnsureTrainerIndexes creates necessary indexes for the trainers collection.
func EnsureTrainerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "availableDays.slotId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "classes", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
