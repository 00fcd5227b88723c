package services

import (
	"context"
	"fmt"

	dbm "vivubot/internal/models/db_models"
	"vivubot/internal/models/request_models"
	"vivubot/internal/models/response_models"
	"vivubot/internal/repositories"
	"vivubot/pkg/utils"
)

type PreferencesServiceInterface interface {
	GetPreferences(ctx context.Context, userID string) (response_models.PreferencesResponse, error)
	UpdatePreferences(ctx context.Context, userID string, req request_models.UpdatePreferencesRequest) (response_models.PreferencesResponse, error)
}

type PreferencesService struct {
	preferencesRepo repositories.PreferencesRepository
}

func NewPreferencesService(preferencesRepo repositories.PreferencesRepository) PreferencesServiceInterface {
	return &PreferencesService{preferencesRepo: preferencesRepo}
}

// GetPreferences returns empty preferences for a user that never saved any.
func (s *PreferencesService) GetPreferences(ctx context.Context, userID string) (response_models.PreferencesResponse, error) {
	if userID == "" {
		return response_models.PreferencesResponse{}, utils.ErrUnauthorized
	}
	prefs, err := s.preferencesRepo.GetByUserID(ctx, userID)
	if err != nil {
		return response_models.PreferencesResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if prefs == nil {
		prefs = &dbm.UserPreferences{UserID: userID}
	}
	return toPreferencesResponse(prefs), nil
}

func (s *PreferencesService) UpdatePreferences(ctx context.Context, userID string, req request_models.UpdatePreferencesRequest) (response_models.PreferencesResponse, error) {
	if userID == "" {
		return response_models.PreferencesResponse{}, utils.ErrUnauthorized
	}
	prefs, err := s.preferencesRepo.GetByUserID(ctx, userID)
	if err != nil {
		return response_models.PreferencesResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if prefs == nil {
		prefs = &dbm.UserPreferences{UserID: userID}
	}

	mergeList := func(dst *[]string, src *[]string) {
		if src != nil {
			*dst = append([]string{}, (*src)...)
		}
	}
	mergeString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	mergeList((*[]string)(&prefs.TravelStyle), req.TravelStyle)
	mergeList((*[]string)(&prefs.LocationType), req.LocationType)
	mergeList((*[]string)(&prefs.CuisineType), req.CuisineType)
	mergeList((*[]string)(&prefs.BudgetLevel), req.BudgetLevel)
	mergeList((*[]string)(&prefs.TravelTime), req.TravelTime)
	mergeString(&prefs.CustomTravelStyle, req.CustomTravelStyle)
	mergeString(&prefs.CustomLocationType, req.CustomLocationType)
	mergeString(&prefs.CustomCuisineType, req.CustomCuisineType)
	mergeString(&prefs.CustomBudgetLevel, req.CustomBudgetLevel)
	mergeString(&prefs.CustomTravelTime, req.CustomTravelTime)
	prefs.HasPreferences = true

	if err := s.preferencesRepo.Save(ctx, prefs); err != nil {
		return response_models.PreferencesResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return toPreferencesResponse(prefs), nil
}

func toPreferencesResponse(p *dbm.UserPreferences) response_models.PreferencesResponse {
	orEmpty := func(v []string) []string {
		if v == nil {
			return []string{}
		}
		return v
	}
	return response_models.PreferencesResponse{
		HasPreferences:     p.HasPreferences,
		TravelStyle:        orEmpty(p.TravelStyle),
		LocationType:       orEmpty(p.LocationType),
		CuisineType:        orEmpty(p.CuisineType),
		BudgetLevel:        orEmpty(p.BudgetLevel),
		TravelTime:         orEmpty(p.TravelTime),
		CustomTravelStyle:  p.CustomTravelStyle,
		CustomLocationType: p.CustomLocationType,
		CustomCuisineType:  p.CustomCuisineType,
		CustomBudgetLevel:  p.CustomBudgetLevel,
		CustomTravelTime:   p.CustomTravelTime,
	}
}
