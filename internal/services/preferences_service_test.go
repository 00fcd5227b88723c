package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivubot/internal/models/request_models"
	"vivubot/pkg/utils"
)

func TestPreferencesService_EmptyForNewUser(t *testing.T) {
	svc := NewPreferencesService(newFakePrefsRepo())

	got, err := svc.GetPreferences(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, got.HasPreferences)
	assert.Equal(t, []string{}, got.TravelStyle)
}

func TestPreferencesService_UpdateMergesSuppliedFields(t *testing.T) {
	repo := newFakePrefsRepo()
	svc := NewPreferencesService(repo)
	ctx := context.Background()

	styles := []string{"phiêu lưu", "văn hóa"}
	custom := "ăn chay"
	_, err := svc.UpdatePreferences(ctx, "u1", request_models.UpdatePreferencesRequest{
		TravelStyle:       &styles,
		CustomCuisineType: &custom,
	})
	require.NoError(t, err)

	budget := []string{"tiết kiệm"}
	got, err := svc.UpdatePreferences(ctx, "u1", request_models.UpdatePreferencesRequest{BudgetLevel: &budget})
	require.NoError(t, err)

	assert.True(t, got.HasPreferences)
	assert.Equal(t, styles, got.TravelStyle)
	assert.Equal(t, budget, got.BudgetLevel)
	assert.Equal(t, "ăn chay", got.CustomCuisineType)
	assert.Equal(t, 2, repo.saves)
}

func TestPreferencesService_RequiresIdentity(t *testing.T) {
	svc := NewPreferencesService(newFakePrefsRepo())

	_, err := svc.GetPreferences(context.Background(), "")
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}
