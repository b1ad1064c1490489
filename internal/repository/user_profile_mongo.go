package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flavourfit/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/datatypes"
)

const profilesCollection = "user_profiles"

// profileDocument is the MongoDB shape of a UserProfile.
type profileDocument struct {
	ClerkID     string             `bson:"clerk_id"`
	Email       string             `bson:"email"`
	Preferences models.Preferences `bson:"preferences"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d profileDocument) toModel() *models.UserProfile {
	return &models.UserProfile{
		ClerkID:     d.ClerkID,
		Email:       d.Email,
		Preferences: datatypes.NewJSONType(d.Preferences),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type mongoUserProfileRepository struct {
	client   *mongodriver.Client
	profiles *mongodriver.Collection
	now      func() time.Time
}

// NewMongoUserProfileRepository prepares the profiles collection and its
// unique clerk_id index.
func NewMongoUserProfileRepository(ctx context.Context, db *mongodriver.Database) (UserProfileRepository, error) {
	profiles := db.Collection(profilesCollection)

	_, err := profiles.Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "clerk_id", Value: 1}},
		Options: options.Index().SetName("clerk_id_unique").SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("mongo ensure indexes: %w", err)
	}

	return &mongoUserProfileRepository{
		client:   db.Client(),
		profiles: profiles,
		now:      time.Now,
	}, nil
}

func (r *mongoUserProfileRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.UserProfile, error) {
	var doc profileDocument
	err := r.profiles.FindOne(ctx, bson.M{"clerk_id": clerkID}).Decode(&doc)
	if errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoUserProfileRepository) Upsert(ctx context.Context, clerkID, email string, prefs models.Preferences) (*models.UserProfile, error) {
	now := r.now().UTC()
	update := bson.M{
		"$set": bson.M{
			"email":       email,
			"preferences": prefs,
			"updated_at":  now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc profileDocument
	if err := r.profiles.FindOneAndUpdate(ctx, bson.M{"clerk_id": clerkID}, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return doc.toModel(), nil
}

func (r *mongoUserProfileRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
