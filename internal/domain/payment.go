package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is the persisted record of a confirmed slot booking.
// IdempotencyKey is supplied by the client and unique across payments, so
// a retried confirmation resolves to the already-stored record.
type Payment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	IdempotencyKey string             `bson:"idempotencyKey" json:"idempotencyKey"`
	Price          float64            `bson:"price" json:"price"`
	Currency       string             `bson:"currency" json:"currency"`
	TrainerID      primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	TrainerName    string             `bson:"trainerName,omitempty" json:"trainerName,omitempty"`
	SlotID         string             `bson:"slotId" json:"slotId"`
	UserEmail      string             `bson:"userEmail" json:"userEmail"`
	UserName       string             `bson:"userName,omitempty" json:"userName,omitempty"`
	GatewayRef     string             `bson:"gatewayRef,omitempty" json:"gatewayRef,omitempty"` // Payment intent ID from the gateway
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
