package chatclient

import (
	"context"
	"fmt"
	"net/http"

	"vivubot/internal/destinations"
)

// Generator is the itinerary generation service.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type HistoryTurn struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

type GenerateRequest struct {
	Text     string        `json:"text"`
	History  []HistoryTurn `json:"history,omitempty"`
	Provider string        `json:"ai_provider"`
	UserID   string        `json:"user_id,omitempty"`
}

type GeneratorClient struct {
	rest restClient
}

func NewGeneratorClient(baseURL string, hc *http.Client, token string) *GeneratorClient {
	return &GeneratorClient{rest: newRestClient(baseURL, hc, token)}
}

func (c *GeneratorClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	var out struct {
		Output string `json:"output"`
	}
	if err := c.rest.do(ctx, http.MethodPost, "/generate-itinerary", req, &out); err != nil {
		return "", err
	}
	return out.Output, nil
}

// Lookup enriches destinations. Both calls are best effort for callers.
type Lookup interface {
	Lookup(ctx context.Context, name, typ string) (destinations.Record, error)
	LookupMany(ctx context.Context, text string) ([]destinations.Record, error)
}

type LookupClient struct {
	rest restClient
}

func NewLookupClient(baseURL string, hc *http.Client) *LookupClient {
	return &LookupClient{rest: newRestClient(baseURL, hc, "")}
}

func (c *LookupClient) Lookup(ctx context.Context, name, typ string) (destinations.Record, error) {
	if typ == "" {
		typ = destinations.DefaultType
	}
	var rec destinations.Record
	err := c.rest.do(ctx, http.MethodPost, "/api/destination", map[string]string{
		"placeName": name,
		"type":      typ,
	}, &rec)
	if err != nil {
		return destinations.Record{}, fmt.Errorf("lookup %q: %w", name, err)
	}
	return rec, nil
}

func (c *LookupClient) LookupMany(ctx context.Context, text string) ([]destinations.Record, error) {
	var recs []destinations.Record
	if err := c.rest.do(ctx, http.MethodPost, "/api/destination/multi", map[string]string{"text": text}, &recs); err != nil {
		return nil, fmt.Errorf("lookup many: %w", err)
	}
	return recs, nil
}

// Directions turns a list of stops into a drawable path.
type Directions interface {
	Path(ctx context.Context, points []LatLng) ([]LatLng, error)
}

type DirectionsClient struct {
	rest restClient
}

func NewDirectionsClient(baseURL string, hc *http.Client) *DirectionsClient {
	return &DirectionsClient{rest: newRestClient(baseURL, hc, "")}
}

type lineGeometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

type featureCollection struct {
	Features []struct {
		Geometry lineGeometry `json:"geometry"`
	} `json:"features"`
}

func (c *DirectionsClient) Path(ctx context.Context, points []LatLng) ([]LatLng, error) {
	if len(points) < 2 {
		return append([]LatLng(nil), points...), nil
	}
	coords := make([][2]float64, len(points))
	for i, p := range points {
		coords[i] = [2]float64{p.Lng, p.Lat}
	}

	var fc featureCollection
	if err := c.rest.do(ctx, http.MethodPost, "/api/route", map[string]any{"coordinates": coords}, &fc); err != nil {
		return nil, fmt.Errorf("directions: %w", err)
	}

	var path []LatLng
	for _, f := range fc.Features {
		for _, pt := range f.Geometry.Coordinates {
			if len(pt) < 2 {
				continue
			}
			path = append(path, LatLng{Lat: pt[1], Lng: pt[0]})
		}
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("directions: empty geometry")
	}
	return path, nil
}
