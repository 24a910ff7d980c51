package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// User represents an account in the system. Members can apply to become
// trainers; the Role field mirrors the state of the linked trainer document.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`              // Should be unique
	PasswordHash string             `bson:"passwordHash,omitempty" json:"-"` // Never expose this via JSON
	PhotoURL     string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
