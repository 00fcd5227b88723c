package chatclient

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"vivubot/internal/itinerary"
)

// DefaultCenter is Ho Chi Minh City, used while no stop is selected.
var DefaultCenter = LatLng{Lat: 10.7769, Lng: 106.7009}

type DayPanel struct {
	Key      string
	Label    string
	Stops    []itinerary.Stop
	Expanded bool
}

type Marker struct {
	Position LatLng
	Title    string
	Time     string
	Index    int
}

// ViewModel is everything the map and itinerary panel draw.
type ViewModel struct {
	SessionID   string
	Messages    []Message
	Days        []DayPanel
	SelectedDay string
	Markers     []Marker
	Polyline    []LatLng
	Center      LatLng
	Loading     bool
	Fullscreen  bool
}

// MapView renders controller snapshots and reports day selection back.
type MapView struct {
	ctrl       *Controller
	directions Directions
	logger     *zap.Logger

	mu       sync.Mutex
	pathKey  string
	pathMemo []LatLng
}

func NewMapView(ctrl *Controller, directions Directions, logger *zap.Logger) *MapView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MapView{ctrl: ctrl, directions: directions, logger: logger}
}

// DayLabel renders "day2" as "Ngày 2"; other keys are shown as is.
func DayLabel(key string) string {
	if n, ok := itinerary.DayNumber(key); ok {
		return fmt.Sprintf("Ngày %d", n)
	}
	return key
}

func (v *MapView) Render(ctx context.Context, s State) ViewModel {
	vm := ViewModel{
		SessionID:   s.SessionID,
		Messages:    s.Messages,
		SelectedDay: s.SelectedDay,
		Center:      DefaultCenter,
		Loading:     s.Loading,
		Fullscreen:  s.Fullscreen,
	}

	for _, day := range s.Route.Days() {
		vm.Days = append(vm.Days, DayPanel{
			Key:      day,
			Label:    DayLabel(day),
			Stops:    s.Route.Stops(day),
			Expanded: day == s.SelectedDay,
		})
	}

	stops := s.Route.Stops(s.SelectedDay)
	points := make([]LatLng, 0, len(stops))
	for i, st := range stops {
		p := LatLng{Lat: st.Latitude, Lng: st.Longitude}
		points = append(points, p)
		vm.Markers = append(vm.Markers, Marker{Position: p, Title: st.Name, Time: st.Time, Index: i + 1})
	}
	if len(points) > 0 {
		vm.Center = points[0]
	}
	vm.Polyline = v.path(ctx, points)
	return vm
}

func (v *MapView) path(ctx context.Context, points []LatLng) []LatLng {
	if len(points) < 2 {
		return append([]LatLng(nil), points...)
	}

	key := pathKey(points)
	v.mu.Lock()
	if key == v.pathKey {
		memo := v.pathMemo
		v.mu.Unlock()
		return memo
	}
	v.mu.Unlock()

	path := append([]LatLng(nil), points...)
	if v.directions != nil {
		routed, err := v.directions.Path(ctx, points)
		if err != nil {
			v.logger.Debug("directions unavailable, drawing straight segments", zap.Error(err))
		} else {
			path = routed
		}
	}

	v.mu.Lock()
	v.pathKey, v.pathMemo = key, path
	v.mu.Unlock()
	return path
}

func pathKey(points []LatLng) string {
	var b strings.Builder
	for _, p := range points {
		fmt.Fprintf(&b, "%.6f,%.6f;", p.Lat, p.Lng)
	}
	return b.String()
}

// SelectDay forwards a click on a day panel to the controller.
func (v *MapView) SelectDay(day string) error {
	return v.ctrl.SelectDay(day)
}

// Watch calls fn with a fresh view model on every state change until ctx is
// done.
func (v *MapView) Watch(ctx context.Context, fn func(ViewModel)) error {
	states, cancel := v.ctrl.Subscribe(1)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s, ok := <-states:
			if !ok {
				return nil
			}
			fn(v.Render(ctx, s))
		}
	}
}
