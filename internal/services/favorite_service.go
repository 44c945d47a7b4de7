package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/flavorly-backend/internal/models"
)

var (
	ErrAlreadyFavorited = errors.New("already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

// FavoriteService manages per-user recipe bookmarks in the favorites
// collection. A favorite is addressed by its business key (user, meal id);
// the document's own _id never leaves the store.
type FavoriteService struct {
	col *mongo.Collection
}

func NewFavoriteService(db *mongo.Database) *FavoriteService {
	return &FavoriteService{col: db.Collection("favorites")}
}

// EnsureIndexes creates the unique (user, meal_id) compound index.
// The index is the only guard against duplicate favorites: two concurrent
// adds for the same pair race in Mongo and exactly one insert wins.
func (s *FavoriteService) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "meal_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_user_meal_unique"),
		},
	}

	for _, m := range indexModels {
		if _, err := s.col.Indexes().CreateOne(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.D{{Key: "user", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}

	favorites := []models.Favorite{}
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Add inserts a favorite for the user. Returns ErrAlreadyFavorited when the
// (user, meal id) pair already exists; the duplicate is rejected by the
// unique index, never silently merged.
func (s *FavoriteService) Add(ctx context.Context, userID primitive.ObjectID, mealID, name, thumb string) (*models.Favorite, error) {
	now := time.Now()
	favorite := &models.Favorite{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    userID,
		MealID:    mealID,
		Name:      name,
		Thumb:     thumb,
	}

	if _, err := s.col.InsertOne(ctx, favorite); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return favorite, nil
}

// Remove deletes the user's favorite for the given external meal id.
func (s *FavoriteService) Remove(ctx context.Context, userID primitive.ObjectID, mealID string) error {
	filter := bson.D{
		{Key: "user", Value: userID},
		{Key: "meal_id", Value: mealID},
	}
	err := s.col.FindOneAndDelete(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrFavoriteNotFound
	}
	return err
}
