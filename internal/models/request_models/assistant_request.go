package request_models

type DestinationRequest struct {
	PlaceName string `json:"placeName"`
	Type      string `json:"type"`
}

type MultiDestinationRequest struct {
	Text string `json:"text"`
}

type RouteRequest struct {
	// [lng, lat] pairs, OpenRouteService order
	Coordinates [][]float64 `json:"coordinates"`
}

type HistoryTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type GenerateItineraryRequest struct {
	Text       string        `json:"text"`
	History    []HistoryTurn `json:"history"`
	AIProvider string        `json:"ai_provider"`
	UserID     string        `json:"user_id"`
}

// UpdatePreferencesRequest only changes the fields that are present.
type UpdatePreferencesRequest struct {
	TravelStyle        *[]string `json:"travelStyle"`
	LocationType       *[]string `json:"locationType"`
	CuisineType        *[]string `json:"cuisineType"`
	BudgetLevel        *[]string `json:"budgetLevel"`
	TravelTime         *[]string `json:"travelTime"`
	CustomTravelStyle  *string   `json:"customTravelStyle"`
	CustomLocationType *string   `json:"customLocationType"`
	CustomCuisineType  *string   `json:"customCuisineType"`
	CustomBudgetLevel  *string   `json:"customBudgetLevel"`
	CustomTravelTime   *string   `json:"customTravelTime"`
}
