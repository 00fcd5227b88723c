package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	dbm "vivubot/internal/models/db_models"
)

type PreferencesRepository interface {
	GetByUserID(ctx context.Context, userID string) (*dbm.UserPreferences, error)
	Save(ctx context.Context, prefs *dbm.UserPreferences) error
}

type preferencesRepository struct {
	db *gorm.DB
}

func NewPreferencesRepository(db *gorm.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) GetByUserID(ctx context.Context, userID string) (*dbm.UserPreferences, error) {
	var prefs dbm.UserPreferences
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *preferencesRepository) Save(ctx context.Context, prefs *dbm.UserPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}
