package db_models

import (
	"github.com/lib/pq"
)

// UserPreferences is keyed by the account id carried in the bearer token.
type UserPreferences struct {
	BaseModel
	UserID         string         `gorm:"uniqueIndex;not null"`
	HasPreferences bool           `gorm:"default:false"`
	TravelStyle    pq.StringArray `gorm:"type:text[]"`
	LocationType   pq.StringArray `gorm:"type:text[]"`
	CuisineType    pq.StringArray `gorm:"type:text[]"`
	BudgetLevel    pq.StringArray `gorm:"type:text[]"`
	TravelTime     pq.StringArray `gorm:"type:text[]"`

	CustomTravelStyle  string
	CustomLocationType string
	CustomCuisineType  string
	CustomBudgetLevel  string
	CustomTravelTime   string
}
