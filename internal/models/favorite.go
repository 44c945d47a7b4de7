package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite is a user's bookmark of a recipe from the external catalog.
// MealID is the catalog's own identifier and is opaque to this system.
type Favorite struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	UserID primitive.ObjectID `bson:"user" json:"user"`
	MealID string             `bson:"meal_id" json:"mealId"`
	Name   string             `bson:"name" json:"name"`
	Thumb  string             `bson:"thumb,omitempty" json:"thumb,omitempty"`
}
