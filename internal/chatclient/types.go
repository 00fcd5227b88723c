// Package chatclient is the chat page core: it talks to the backend and the
// itinerary generator, reconciles replies into a route, and publishes state
// snapshots to whatever renders them.
package chatclient

import (
	"errors"
	"time"

	"vivubot/internal/itinerary"
)

const (
	SenderUser = "user"
	SenderBot  = "bot"

	Greeting = "Hi, I'm vivu!"
	Apology  = "Sorry, I couldn't get a response from the AI."
)

var (
	ErrSendInFlight = errors.New("a message is already being sent")
	ErrUnknownDay   = errors.New("day is not part of the current route")
)

type Message struct {
	Sender string `json:"sender"`
	Text   string `json:"message"`
}

type SessionSummary struct {
	SessionID    string    `json:"sessionId"`
	CreatedAt    time.Time `json:"createdAt"`
	MessageCount int       `json:"messageCount"`
}

// LatLng is a map coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// State is an immutable snapshot of the controller.
type State struct {
	SessionID   string
	Messages    []Message
	Route       itinerary.Route
	SelectedDay string
	Loading     bool
	Fullscreen  bool
}

func greetingMessages() []Message {
	return []Message{{Sender: SenderBot, Text: Greeting}}
}
