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

const paymentCollectionName = "payments"

// mongoPaymentRepository implements repository.PaymentRepository.
type mongoPaymentRepository struct {
	collection *mongo.Collection
}

// NewMongoPaymentRepository creates a new Payment repository backed by MongoDB.
func NewMongoPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &mongoPaymentRepository{
		collection: db.Collection(paymentCollectionName),
	}
}

// Create inserts a payment record. The unique index on idempotencyKey makes
// a duplicate submission fail with ErrConflict, which the booking service
// resolves to the already-stored record.
func (r *mongoPaymentRepository) Create(ctx context.Context, payment *domain.Payment) (primitive.ObjectID, error) {
	if payment.IdempotencyKey == "" || payment.SlotID == "" || payment.UserEmail == "" {
		return primitive.NilObjectID, errors.New("payment idempotency key, slot ID and user email are required")
	}

	payment.ID = primitive.NewObjectID()
	payment.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, payment)
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

// GetByIdempotencyKey retrieves the payment stored for a given key.
func (r *mongoPaymentRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.collection.FindOne(ctx, bson.M{"idempotencyKey": key}).Decode(&payment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// List retrieves all payment records, newest first.
func (r *mongoPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &payments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// EnsurePaymentIndexes creates necessary indexes for the payments collection.
func EnsurePaymentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "idempotencyKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slotId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userEmail", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
