package db_models

import (
	"time"

	"gorm.io/datatypes"
)

type TravelPlan struct {
	BaseModel
	UserID               *string `gorm:"index"`
	UserName             string  `gorm:"not null"`
	Departure            string  `gorm:"not null"`
	Destination          string  `gorm:"not null"`
	OutboundDate         time.Time
	ReturnDate           time.Time
	AdultsNum            int
	ChildrenNum          int
	ChildrenAges         string
	RestaurantPreference string
	Budget               float64
	SessionID            *string `gorm:"index"`
	// day-keyed route, same shape the chat produces
	Itinerary datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
