package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivubot/internal/models/request_models"
	"vivubot/pkg/utils"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func validPlanRequest() request_models.TravelPlanRequest {
	return request_models.TravelPlanRequest{
		UserName:     strPtr("Lan"),
		Departure:    strPtr("Hồ Chí Minh"),
		Destination:  strPtr("Cần Thơ"),
		OutboundDate: strPtr("2025-06-15"),
		ReturnDate:   strPtr("2025-06-17"),
		AdultsNum:    intPtr(2),
		ChildrenNum:  intPtr(0),
	}
}

func TestTravelPlanService_CreateAcceptsZeroChildren(t *testing.T) {
	svc := NewTravelPlanService(newFakePlanRepo())

	plan, err := svc.CreatePlan(context.Background(), "u1", validPlanRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, plan.ChildrenNum)
	assert.Equal(t, "2025-06-15T00:00:00+07:00", plan.OutboundDate)
	assert.NotEmpty(t, plan.ID)
}

func TestTravelPlanService_CreateReportsMissingFields(t *testing.T) {
	svc := NewTravelPlanService(newFakePlanRepo())

	req := validPlanRequest()
	req.Destination = strPtr("  ")
	req.ChildrenNum = nil

	_, err := svc.CreatePlan(context.Background(), "", req)
	require.ErrorIs(t, err, utils.ErrInvalidInput)
	assert.Contains(t, err.Error(), "destination")
	assert.Contains(t, err.Error(), "children_num")
}

func TestTravelPlanService_ReturnBeforeOutbound(t *testing.T) {
	svc := NewTravelPlanService(newFakePlanRepo())

	req := validPlanRequest()
	req.ReturnDate = strPtr("2025-06-14")

	_, err := svc.CreatePlan(context.Background(), "", req)
	assert.ErrorIs(t, err, utils.ErrInvalidDateRange)
}

func TestTravelPlanService_InvalidAndMissingIDs(t *testing.T) {
	svc := NewTravelPlanService(newFakePlanRepo())
	ctx := context.Background()

	_, err := svc.GetPlan(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, utils.ErrInvalidPlanID)

	_, err = svc.GetPlan(ctx, uuid.NewString())
	assert.ErrorIs(t, err, utils.ErrTravelPlanNotFound)

	assert.ErrorIs(t, svc.DeletePlan(ctx, "nope"), utils.ErrInvalidPlanID)
	assert.ErrorIs(t, svc.DeletePlan(ctx, uuid.NewString()), utils.ErrTravelPlanNotFound)
}

func TestTravelPlanService_UpdateOnlyTouchesSuppliedFields(t *testing.T) {
	svc := NewTravelPlanService(newFakePlanRepo())
	ctx := context.Background()

	created, err := svc.CreatePlan(ctx, "u1", validPlanRequest())
	require.NoError(t, err)

	updated, err := svc.UpdatePlan(ctx, created.ID, request_models.TravelPlanRequest{
		Budget:    func() *float64 { b := 3500000.0; return &b }(),
		Itinerary: json.RawMessage(`{"day1":[{"name":"Bến Ninh Kiều","latitude":"10.0340","longitude":105.7880,"time":"18:00"}]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Cần Thơ", updated.Destination)
	assert.Equal(t, 3500000.0, updated.Budget)
	assert.JSONEq(t,
		`{"day1":[{"name":"Bến Ninh Kiều","latitude":10.034,"longitude":105.788,"time":"18:00"}]}`,
		string(updated.Itinerary))

	// moving return before outbound is rejected on update too
	_, err = svc.UpdatePlan(ctx, created.ID, request_models.TravelPlanRequest{ReturnDate: strPtr("2025-06-01")})
	assert.ErrorIs(t, err, utils.ErrInvalidDateRange)
}

func TestTravelPlanService_RejectsMalformedItinerary(t *testing.T) {
	svc := NewTravelPlanService(newFakePlanRepo())

	req := validPlanRequest()
	req.Itinerary = json.RawMessage(`{"day1": "not a list"}`)

	_, err := svc.CreatePlan(context.Background(), "", req)
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestTravelPlanService_ListFiltersByUser(t *testing.T) {
	svc := NewTravelPlanService(newFakePlanRepo())
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, "u1", validPlanRequest())
	require.NoError(t, err)
	_, err = svc.CreatePlan(ctx, "u2", validPlanRequest())
	require.NoError(t, err)

	mine, err := svc.ListPlans(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListPlans(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
