package request_models

import "encoding/json"

// TravelPlanRequest is used for both create and update. Pointers tell
// "absent" apart from zero so updates only touch supplied fields.
type TravelPlanRequest struct {
	UserName             *string         `json:"user_name"`
	Departure            *string         `json:"departure"`
	Destination          *string         `json:"destination"`
	OutboundDate         *string         `json:"outbound_date"` // "2025-06-15" or RFC3339
	ReturnDate           *string         `json:"return_date"`
	AdultsNum            *int            `json:"adults_num"`
	ChildrenNum          *int            `json:"children_num"`
	ChildrenAges         *string         `json:"children_ages"`
	RestaurantPreference *string         `json:"restaurant_preference"`
	Budget               *float64        `json:"budget"`
	SessionID            *string         `json:"session_id"`
	Itinerary            json.RawMessage `json:"itinerary"`
}
