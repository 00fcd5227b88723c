package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrDatabaseError          = errors.New("database error")
	ErrSessionNotFound        = errors.New("chat session not found")
	ErrTravelPlanNotFound     = errors.New("travel plan not found")
	ErrInvalidPlanID          = errors.New("invalid travel plan id")
	ErrInvalidDateRange       = errors.New("return date before outbound date")
	ErrUnsupportedProvider    = errors.New("unsupported ai provider")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of ai")
	ErrDestinationNotFound    = errors.New("destination not found")
	ErrNotEnoughCoordinates   = errors.New("need at least 2 coordinates")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrPreferencesNotFound    = errors.New("preferences not found")
)
