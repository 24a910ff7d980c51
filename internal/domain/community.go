package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackType categorizes feedback records.
type FeedbackType string

const (
	FeedbackTrainerRejection FeedbackType = "trainer_rejection"
)

// Feedback is an append-only note attached to a user, e.g. the reason a
// trainer application was rejected.
type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Email     string             `bson:"email" json:"email"`
	Feedback  string             `bson:"feedback" json:"feedback"`
	Type      FeedbackType       `bson:"type" json:"type"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Review is a free-form, append-only member review.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Rating    int                `bson:"rating,omitempty" json:"rating,omitempty"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ForumPost is a community discussion entry with simple vote tallies.
type ForumPost struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content,omitempty" json:"content,omitempty"`
	Author    string             `bson:"author,omitempty" json:"author,omitempty"`
	Role      Role               `bson:"role,omitempty" json:"role,omitempty"`
	Upvotes   int                `bson:"upvotes" json:"upvotes"`
	Downvotes int                `bson:"downvotes" json:"downvotes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
