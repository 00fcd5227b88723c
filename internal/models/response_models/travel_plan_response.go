package response_models

import "encoding/json"

type TravelPlanResponse struct {
	ID                   string          `json:"id"`
	UserName             string          `json:"user_name"`
	Departure            string          `json:"departure"`
	Destination          string          `json:"destination"`
	OutboundDate         string          `json:"outbound_date"`
	ReturnDate           string          `json:"return_date"`
	AdultsNum            int             `json:"adults_num"`
	ChildrenNum          int             `json:"children_num"`
	ChildrenAges         string          `json:"children_ages"`
	RestaurantPreference string          `json:"restaurant_preference"`
	Budget               float64         `json:"budget"`
	SessionID            string          `json:"session_id,omitempty"`
	Itinerary            json.RawMessage `json:"itinerary,omitempty"`
	CreatedAt            string          `json:"createdAt"`
	UpdatedAt            string          `json:"updatedAt"`
}
