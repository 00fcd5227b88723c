package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "vivubot/internal/models/db_models"
)

type TravelPlanRepository interface {
	List(ctx context.Context, userID *string) ([]dbm.TravelPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dbm.TravelPlan, error)
	Create(ctx context.Context, plan *dbm.TravelPlan) error
	Update(ctx context.Context, plan *dbm.TravelPlan) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type travelPlanRepository struct {
	db *gorm.DB
}

func NewTravelPlanRepository(db *gorm.DB) TravelPlanRepository {
	return &travelPlanRepository{db: db}
}

func (r *travelPlanRepository) List(ctx context.Context, userID *string) ([]dbm.TravelPlan, error) {
	var plans []dbm.TravelPlan
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	if err := q.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *travelPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*dbm.TravelPlan, error) {
	var plan dbm.TravelPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *travelPlanRepository) Create(ctx context.Context, plan *dbm.TravelPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *travelPlanRepository) Update(ctx context.Context, plan *dbm.TravelPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *travelPlanRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&dbm.TravelPlan{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
