package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"vivubot/internal/itinerary"
	dbm "vivubot/internal/models/db_models"
	"vivubot/internal/models/request_models"
	"vivubot/internal/models/response_models"
	"vivubot/internal/repositories"
	"vivubot/pkg/utils"
)

type TravelPlanServiceInterface interface {
	ListPlans(ctx context.Context, userID string) ([]response_models.TravelPlanResponse, error)
	GetPlan(ctx context.Context, id string) (response_models.TravelPlanResponse, error)
	CreatePlan(ctx context.Context, userID string, req request_models.TravelPlanRequest) (response_models.TravelPlanResponse, error)
	UpdatePlan(ctx context.Context, id string, req request_models.TravelPlanRequest) (response_models.TravelPlanResponse, error)
	DeletePlan(ctx context.Context, id string) error
}

type TravelPlanService struct {
	planRepository repositories.TravelPlanRepository
}

func NewTravelPlanService(planRepository repositories.TravelPlanRepository) TravelPlanServiceInterface {
	return &TravelPlanService{planRepository: planRepository}
}

func (s *TravelPlanService) ListPlans(ctx context.Context, userID string) ([]response_models.TravelPlanResponse, error) {
	var filter *string
	if userID != "" {
		filter = &userID
	}
	plans, err := s.planRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.TravelPlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, toTravelPlanResponse(&plans[i]))
	}
	return out, nil
}

func (s *TravelPlanService) GetPlan(ctx context.Context, id string) (response_models.TravelPlanResponse, error) {
	plan, err := s.find(ctx, id)
	if err != nil {
		return response_models.TravelPlanResponse{}, err
	}
	return toTravelPlanResponse(plan), nil
}

func (s *TravelPlanService) CreatePlan(ctx context.Context, userID string, req request_models.TravelPlanRequest) (response_models.TravelPlanResponse, error) {
	if missing := missingPlanFields(req); len(missing) > 0 {
		return response_models.TravelPlanResponse{}, fmt.Errorf("%w: missing %s", utils.ErrInvalidInput, strings.Join(missing, ", "))
	}

	plan := &dbm.TravelPlan{}
	if userID != "" {
		plan.UserID = &userID
	}
	if err := applyPlanRequest(plan, req); err != nil {
		return response_models.TravelPlanResponse{}, err
	}

	if err := s.planRepository.Create(ctx, plan); err != nil {
		return response_models.TravelPlanResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return toTravelPlanResponse(plan), nil
}

func (s *TravelPlanService) UpdatePlan(ctx context.Context, id string, req request_models.TravelPlanRequest) (response_models.TravelPlanResponse, error) {
	plan, err := s.find(ctx, id)
	if err != nil {
		return response_models.TravelPlanResponse{}, err
	}
	if err := applyPlanRequest(plan, req); err != nil {
		return response_models.TravelPlanResponse{}, err
	}

	if err := s.planRepository.Update(ctx, plan); err != nil {
		return response_models.TravelPlanResponse{}, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return toTravelPlanResponse(plan), nil
}

func (s *TravelPlanService) DeletePlan(ctx context.Context, id string) error {
	planID, err := uuid.Parse(id)
	if err != nil {
		return utils.ErrInvalidPlanID
	}
	deleted, err := s.planRepository.Delete(ctx, planID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !deleted {
		return utils.ErrTravelPlanNotFound
	}
	return nil
}

func (s *TravelPlanService) find(ctx context.Context, id string) (*dbm.TravelPlan, error) {
	planID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.ErrInvalidPlanID
	}
	plan, err := s.planRepository.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if plan == nil {
		return nil, utils.ErrTravelPlanNotFound
	}
	return plan, nil
}

// missingPlanFields lists required create fields that are absent. Counts
// only need to be present, zero children is valid.
func missingPlanFields(req request_models.TravelPlanRequest) []string {
	var missing []string
	blank := func(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

	if blank(req.UserName) {
		missing = append(missing, "user_name")
	}
	if blank(req.Departure) {
		missing = append(missing, "departure")
	}
	if blank(req.Destination) {
		missing = append(missing, "destination")
	}
	if blank(req.OutboundDate) {
		missing = append(missing, "outbound_date")
	}
	if blank(req.ReturnDate) {
		missing = append(missing, "return_date")
	}
	if req.AdultsNum == nil {
		missing = append(missing, "adults_num")
	}
	if req.ChildrenNum == nil {
		missing = append(missing, "children_num")
	}
	return missing
}

// applyPlanRequest copies the supplied fields onto plan and re-checks the
// invariants that span fields.
func applyPlanRequest(plan *dbm.TravelPlan, req request_models.TravelPlanRequest) error {
	if req.UserName != nil {
		plan.UserName = strings.TrimSpace(*req.UserName)
	}
	if req.Departure != nil {
		plan.Departure = strings.TrimSpace(*req.Departure)
	}
	if req.Destination != nil {
		plan.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.OutboundDate != nil {
		t, err := utils.ParseDateVN(*req.OutboundDate)
		if err != nil {
			return fmt.Errorf("%w: outbound_date: %v", utils.ErrInvalidInput, err)
		}
		plan.OutboundDate = t
	}
	if req.ReturnDate != nil {
		t, err := utils.ParseDateVN(*req.ReturnDate)
		if err != nil {
			return fmt.Errorf("%w: return_date: %v", utils.ErrInvalidInput, err)
		}
		plan.ReturnDate = t
	}
	if req.AdultsNum != nil {
		if *req.AdultsNum < 0 {
			return fmt.Errorf("%w: adults_num must not be negative", utils.ErrInvalidInput)
		}
		plan.AdultsNum = *req.AdultsNum
	}
	if req.ChildrenNum != nil {
		if *req.ChildrenNum < 0 {
			return fmt.Errorf("%w: children_num must not be negative", utils.ErrInvalidInput)
		}
		plan.ChildrenNum = *req.ChildrenNum
	}
	if req.ChildrenAges != nil {
		plan.ChildrenAges = *req.ChildrenAges
	}
	if req.RestaurantPreference != nil {
		plan.RestaurantPreference = *req.RestaurantPreference
	}
	if req.Budget != nil {
		plan.Budget = *req.Budget
	}
	if req.SessionID != nil {
		if *req.SessionID == "" {
			plan.SessionID = nil
		} else {
			sid := *req.SessionID
			plan.SessionID = &sid
		}
	}
	if len(req.Itinerary) > 0 && string(req.Itinerary) != "null" {
		var route itinerary.Route
		if err := json.Unmarshal(req.Itinerary, &route); err != nil {
			return fmt.Errorf("%w: itinerary: %v", utils.ErrInvalidInput, err)
		}
		raw, err := json.Marshal(route)
		if err != nil {
			return fmt.Errorf("%w: itinerary: %v", utils.ErrInvalidInput, err)
		}
		plan.Itinerary = datatypes.JSON(raw)
	}

	if !plan.OutboundDate.IsZero() && !plan.ReturnDate.IsZero() && plan.ReturnDate.Before(plan.OutboundDate) {
		return utils.ErrInvalidDateRange
	}
	return nil
}

func toTravelPlanResponse(p *dbm.TravelPlan) response_models.TravelPlanResponse {
	resp := response_models.TravelPlanResponse{
		ID:                   p.ID.String(),
		UserName:             p.UserName,
		Departure:            p.Departure,
		Destination:          p.Destination,
		OutboundDate:         utils.FormatRFC3339VN(p.OutboundDate),
		ReturnDate:           utils.FormatRFC3339VN(p.ReturnDate),
		AdultsNum:            p.AdultsNum,
		ChildrenNum:          p.ChildrenNum,
		ChildrenAges:         p.ChildrenAges,
		RestaurantPreference: p.RestaurantPreference,
		Budget:               p.Budget,
		CreatedAt:            utils.FormatRFC3339VN(p.Created()),
		UpdatedAt:            utils.FormatRFC3339VN(p.Updated()),
	}
	if p.SessionID != nil {
		resp.SessionID = *p.SessionID
	}
	if len(p.Itinerary) > 0 {
		resp.Itinerary = json.RawMessage(p.Itinerary)
	}
	return resp
}
