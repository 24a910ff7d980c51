package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerSnapshot is a denormalized summary of a trainer embedded in a
// class document at application time. It is a point-in-time copy, not a
// live reference.
type TrainerSnapshot struct {
	TrainerID     primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Name          string             `bson:"name" json:"name"`
	Experience    string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Skills        []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	Age           int                `bson:"age,omitempty" json:"age,omitempty"`
	ProfileImage  string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	AvailableDays []Slot             `bson:"availableDays,omitempty" json:"availableDays,omitempty"`
	AvailableTime string             `bson:"availableTime,omitempty" json:"availableTime,omitempty"`
	Social        SocialLinks        `bson:"social,omitempty" json:"social,omitempty"`
}

// Class is a catalog entry. Class names are unique; a second trainer
// claiming an existing name is appended to SpecializedTrainers instead of
// creating a duplicate document.
type Class struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	Intensity           []string           `bson:"intensity,omitempty" json:"intensity,omitempty"`
	Equipment           []string           `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Duration            string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Image               string             `bson:"image,omitempty" json:"image,omitempty"`
	SpecializedTrainers []TrainerSnapshot  `bson:"specializedTrainers,omitempty" json:"specializedTrainers,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DefaultIntensity is applied to classes created without an explicit level list.
var DefaultIntensity = []string{"Beginner", "Intermediate", "Advanced"}
