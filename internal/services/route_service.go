package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"vivubot/internal/models/response_models"
	mem "vivubot/pkg/memcache"
	"vivubot/pkg/utils"
)

const (
	openRouteBaseURL = "https://api.openrouteservice.org"
	openRouteProfile = "driving-car"
	routeCacheTTL    = 7 * 24 * time.Hour
)

type RouteServiceInterface interface {
	// CalculateRoute takes [lng, lat] pairs and always yields a drawable
	// FeatureCollection, falling back to straight segments.
	CalculateRoute(ctx context.Context, coordinates [][]float64) (response_models.FeatureCollection, error)
}

type OpenRouteClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string
	Profile string
	Cache   mem.Store[string, response_models.FeatureCollection]
	TTL     time.Duration
	logger  *zap.Logger
}

func NewRouteService(apiKey string, cache mem.Store[string, response_models.FeatureCollection], logger *zap.Logger) *OpenRouteClient {
	return &OpenRouteClient{
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		APIKey:  apiKey,
		BaseURL: openRouteBaseURL,
		Profile: openRouteProfile,
		Cache:   cache,
		TTL:     routeCacheTTL,
		logger:  logger,
	}
}

func (c *OpenRouteClient) CalculateRoute(ctx context.Context, coordinates [][]float64) (response_models.FeatureCollection, error) {
	if len(coordinates) < 2 {
		return response_models.FeatureCollection{}, utils.ErrNotEnoughCoordinates
	}
	for i, pt := range coordinates {
		if len(pt) < 2 {
			return response_models.FeatureCollection{}, fmt.Errorf("%w: coordinate %d needs [lng, lat]", utils.ErrInvalidInput, i)
		}
	}

	key := c.Profile + ":" + coordinateKey(coordinates)
	if fc, ok := c.Cache.Get(key); ok {
		return fc, nil
	}

	if c.APIKey == "" {
		return StraightLine(coordinates), nil
	}

	fc, err := c.directions(ctx, coordinates)
	if err != nil {
		c.logger.Warn("openrouteservice failed, using straight line",
			zap.Int("points", len(coordinates)), zap.Error(err))
		return StraightLine(coordinates), nil
	}

	c.Cache.Set(key, fc, c.TTL)
	return fc, nil
}

func (c *OpenRouteClient) directions(ctx context.Context, coordinates [][]float64) (response_models.FeatureCollection, error) {
	body, err := json.Marshal(map[string]any{"coordinates": coordinates})
	if err != nil {
		return response_models.FeatureCollection{}, err
	}

	u := strings.TrimRight(c.BaseURL, "/") + "/v2/directions/" + c.Profile + "/geojson"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return response_models.FeatureCollection{}, err
	}
	req.Header.Set("Authorization", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return response_models.FeatureCollection{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return response_models.FeatureCollection{}, fmt.Errorf("openrouteservice status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var fc response_models.FeatureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return response_models.FeatureCollection{}, fmt.Errorf("decode directions: %w", err)
	}
	if len(fc.Features) == 0 || len(fc.Features[0].Geometry.Coordinates) == 0 {
		return response_models.FeatureCollection{}, fmt.Errorf("openrouteservice returned no geometry")
	}
	return fc, nil
}

// StraightLine joins the points in order with a single LineString.
func StraightLine(coordinates [][]float64) response_models.FeatureCollection {
	coords := make([][]float64, len(coordinates))
	for i, pt := range coordinates {
		coords[i] = []float64{pt[0], pt[1]}
	}
	return response_models.FeatureCollection{
		Type: "FeatureCollection",
		Features: []response_models.Feature{{
			Type:       "Feature",
			Properties: map[string]any{},
			Geometry: response_models.LineString{
				Type:        "LineString",
				Coordinates: coords,
			},
		}},
	}
}

func coordinateKey(coordinates [][]float64) string {
	var b strings.Builder
	for i, pt := range coordinates {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatFloat(pt[0], 'f', 6, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(pt[1], 'f', 6, 64))
	}
	return b.String()
}
