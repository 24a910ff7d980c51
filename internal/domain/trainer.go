package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerStatus is the lifecycle state of a trainer application.
type TrainerStatus string

const (
	TrainerPending  TrainerStatus = "pending"
	TrainerActive   TrainerStatus = "active"
	TrainerRejected TrainerStatus = "rejected"
)

// SlotStatus is the booking state of a single slot.
// A reservation is a short-lived hold placed while payment is in flight;
// it either becomes a booking or lapses back to available.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotReserved  SlotStatus = "reserved"
	SlotBooked    SlotStatus = "booked"
)

// Slot is a single bookable time unit embedded in a trainer document.
type Slot struct {
	SlotID        string     `bson:"slotId" json:"slotId"` // UUID, unique within the trainer
	Day           string     `bson:"day" json:"day"`
	Status        SlotStatus `bson:"status,omitempty" json:"status,omitempty"`
	BookedBy      string     `bson:"bookedBy,omitempty" json:"bookedBy,omitempty"`
	ReservedBy    string     `bson:"reservedBy,omitempty" json:"reservedBy,omitempty"`
	ReservedUntil *time.Time `bson:"reservedUntil,omitempty" json:"reservedUntil,omitempty"`
}

// IsBooked reports whether the slot holds a confirmed booking.
func (s *Slot) IsBooked() bool {
	return s.Status == SlotBooked
}

// ReservationExpired reports whether a reservation has lapsed as of now.
func (s *Slot) ReservationExpired(now time.Time) bool {
	return s.Status == SlotReserved && s.ReservedUntil != nil && s.ReservedUntil.Before(now)
}

// SocialLinks groups a trainer's social media handles.
type SocialLinks struct {
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Trainer represents a trainer application/profile. Linked 1:1 to a User
// by email; approval promotes the linked user's role to "trainer".
type Trainer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName      string             `bson:"fullName" json:"fullName"`
	Email         string             `bson:"email" json:"email"` // Unique, links to User
	Age           int                `bson:"age,omitempty" json:"age,omitempty"`
	Experience    string             `bson:"experience,omitempty" json:"experience,omitempty"`
	Skills        []string           `bson:"skills,omitempty" json:"skills,omitempty"`
	ProfileImage  string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Social        SocialLinks        `bson:"social,omitempty" json:"social,omitempty"`
	Status        TrainerStatus      `bson:"status" json:"status"`
	AvailableDays []Slot             `bson:"availableDays" json:"availableDays"`
	AvailableTime string             `bson:"availableTime,omitempty" json:"availableTime,omitempty"`
	Classes       []string           `bson:"classes,omitempty" json:"classes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// FindSlot returns the embedded slot with the given ID, or nil.
func (t *Trainer) FindSlot(slotID string) *Slot {
	for i := range t.AvailableDays {
		if t.AvailableDays[i].SlotID == slotID {
			return &t.AvailableDays[i]
		}
	}
	return nil
}

// TrainerSlot is a flattened view of one slot annotated with the trainer
// that owns it, used by the aggregate slot listing.
type TrainerSlot struct {
	ID           string             `json:"_id"` // Mirrors SlotID for frontend table keys
	TrainerID    primitive.ObjectID `json:"trainerId"`
	TrainerName  string             `json:"trainerName"`
	TrainerEmail string             `json:"trainerEmail"`
	SlotID       string             `json:"slotId"`
	Day          string             `json:"day"`
	Status       SlotStatus         `json:"status"`
	IsBooked     bool               `json:"isBooked"`
	BookedBy     *string            `json:"bookedBy"`
}
