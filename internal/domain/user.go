package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account. The app is single-user per device;
// there are no roles, every user owns only their own plans and workouts.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`       // Unique
	Username     string             `bson:"username" json:"username"` // Display name, snapshotted onto completed workouts
	PasswordHash string             `bson:"passwordHash" json:"-"`    // Never expose this via JSON
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
