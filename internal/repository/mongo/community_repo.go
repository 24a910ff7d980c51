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

// Append-only community collections: feedback, reviews, forums, newsletter.
// These carry no invariants beyond insertion order, so the repositories stay
// deliberately small.

const (
	feedbackCollectionName   = "feedback"
	reviewCollectionName     = "reviews"
	forumCollectionName      = "forums"
	newsletterCollectionName = "newsletter"
)

// --- Feedback ---

type mongoFeedbackRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedbackRepository creates a new Feedback repository backed by MongoDB.
func NewMongoFeedbackRepository(db *mongo.Database) repository.FeedbackRepository {
	return &mongoFeedbackRepository{collection: db.Collection(feedbackCollectionName)}
}

func (r *mongoFeedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) (primitive.ObjectID, error) {
	if feedback.Email == "" || feedback.Type == "" {
		return primitive.NilObjectID, errors.New("feedback email and type are required")
	}

	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail returns the most recent feedback entry for an email.
func (r *mongoFeedbackRepository) GetByEmail(ctx context.Context, email string) (*domain.Feedback, error) {
	var feedback domain.Feedback

	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"email": email}, findOptions).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

// --- Reviews ---

type mongoReviewRepository struct {
	collection *mongo.Collection
}

// NewMongoReviewRepository creates a new Review repository backed by MongoDB.
func NewMongoReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &mongoReviewRepository{collection: db.Collection(reviewCollectionName)}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *domain.Review) (primitive.ObjectID, error) {
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, cursor.Err()
}

// --- Forums ---

type mongoForumRepository struct {
	collection *mongo.Collection
}

// NewMongoForumRepository creates a new Forum repository backed by MongoDB.
func NewMongoForumRepository(db *mongo.Database) repository.ForumRepository {
	return &mongoForumRepository{collection: db.Collection(forumCollectionName)}
}

func (r *mongoForumRepository) Create(ctx context.Context, post *domain.ForumPost) (primitive.ObjectID, error) {
	if post.Title == "" {
		return primitive.NilObjectID, errors.New("forum post title is required")
	}

	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoForumRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ForumPost, error) {
	var post domain.ForumPost
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *mongoForumRepository) List(ctx context.Context) ([]domain.ForumPost, error) {
	var posts []domain.ForumPost

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, cursor.Err()
}

// IncrementVote atomically bumps the given tally field. The field name must
// already be validated by the caller; this layer only runs the $inc.
func (r *mongoForumRepository) IncrementVote(ctx context.Context, id primitive.ObjectID, field string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// --- Newsletter ---

type mongoNewsletterRepository struct {
	collection *mongo.Collection
}

// NewMongoNewsletterRepository creates a new Newsletter repository backed by MongoDB.
func NewMongoNewsletterRepository(db *mongo.Database) repository.NewsletterRepository {
	return &mongoNewsletterRepository{collection: db.Collection(newsletterCollectionName)}
}

func (r *mongoNewsletterRepository) Create(ctx context.Context, sub *domain.Subscriber) (primitive.ObjectID, error) {
	if sub.Email == "" {
		return primitive.NilObjectID, errors.New("subscriber email is required")
	}

	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, sub)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoNewsletterRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	var subs []domain.Subscriber

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, cursor.Err()
}
