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

const classCollectionName = "classes"

// mongoClassRepository implements repository.ClassRepository.
type mongoClassRepository struct {
	collection *mongo.Collection
}

// NewMongoClassRepository creates a new Class repository backed by MongoDB.
func NewMongoClassRepository(db *mongo.Database) repository.ClassRepository {
	return &mongoClassRepository{
		collection: db.Collection(classCollectionName),
	}
}

// Create inserts a standalone class document (admin "add class" flow).
func (r *mongoClassRepository) Create(ctx context.Context, class *domain.Class) (primitive.ObjectID, error) {
	if class.Name == "" {
		return primitive.NilObjectID, errors.New("class name is required")
	}

	class.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, class)
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

// UpsertByName merges a class claimed by a trainer application. A new name
// inserts the full document; an existing name only gains the trainer
// snapshot, so two trainers claiming "Yoga" share one catalog entry.
func (r *mongoClassRepository) UpsertByName(ctx context.Context, class *domain.Class, snapshot domain.TrainerSnapshot) error {
	if class.Name == "" {
		return errors.New("class name is required")
	}

	now := time.Now().UTC()
	filter := bson.M{"name": class.Name}
	update := bson.M{
		"$setOnInsert": bson.M{
			"description": class.Description,
			"intensity":   class.Intensity,
			"equipment":   class.Equipment,
			"duration":    class.Duration,
			"image":       class.Image,
			"createdAt":   now,
		},
		"$push": bson.M{"specializedTrainers": snapshot},
		"$set":  bson.M{"updatedAt": now},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByID retrieves a class by its ID.
func (r *mongoClassRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Class, error) {
	var class domain.Class
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&class)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &class, nil
}

// List retrieves the whole class catalog.
func (r *mongoClassRepository) List(ctx context.Context) ([]domain.Class, error) {
	var classes []domain.Class

	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &classes); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

// EnsureClassIndexes creates necessary indexes for the classes collection.
func EnsureClassIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Unique name backs the upsert-by-name merge strategy.
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
