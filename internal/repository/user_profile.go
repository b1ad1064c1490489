package repository

import (
	"context"
	"errors"
	"fmt"

	"flavourfit/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProfileNotFound = errors.New("profile not found")

type UserProfileRepository interface {
	FindByClerkID(ctx context.Context, clerkID string) (*models.UserProfile, error)
	// Upsert replaces the whole preference document stored for clerkID,
	// creating it when absent, and returns the stored profile.
	Upsert(ctx context.Context, clerkID, email string, prefs models.Preferences) (*models.UserProfile, error)
	Ping(ctx context.Context) error
}

type userProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) FindByClerkID(ctx context.Context, clerkID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

func (r *userProfileRepository) Upsert(ctx context.Context, clerkID, email string, prefs models.Preferences) (*models.UserProfile, error) {
	profile := models.UserProfile{
		ClerkID:     clerkID,
		Email:       email,
		Preferences: datatypes.NewJSONType(prefs),
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "clerk_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "preferences", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	return r.FindByClerkID(ctx, clerkID)
}

func (r *userProfileRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
