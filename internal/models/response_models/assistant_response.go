package response_models

type DestinationResponse struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Intro     string `json:"intro,omitempty"`
}

type GenerateItineraryResponse struct {
	Output string `json:"output"`
}

// GeoJSON FeatureCollection as produced by OpenRouteService.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   LineString     `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type PreferencesResponse struct {
	HasPreferences     bool     `json:"hasPreferences"`
	TravelStyle        []string `json:"travelStyle"`
	LocationType       []string `json:"locationType"`
	CuisineType        []string `json:"cuisineType"`
	BudgetLevel        []string `json:"budgetLevel"`
	TravelTime         []string `json:"travelTime"`
	CustomTravelStyle  string   `json:"customTravelStyle"`
	CustomLocationType string   `json:"customLocationType"`
	CustomCuisineType  string   `json:"customCuisineType"`
	CustomBudgetLevel  string   `json:"customBudgetLevel"`
	CustomTravelTime   string   `json:"customTravelTime"`
}
