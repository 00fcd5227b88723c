package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vivubot/internal/destinations"
	"vivubot/internal/models/response_models"
	"vivubot/pkg/jsonx"
	mem "vivubot/pkg/memcache"
	"vivubot/pkg/utils"
)

const (
	destinationCacheTTL = 24 * time.Hour
	lookupConcurrency   = 4
)

type DestinationServiceInterface interface {
	GetDestination(ctx context.Context, name, placeType string) (response_models.DestinationResponse, error)
	ExtractDestinations(ctx context.Context, text string) ([]response_models.DestinationResponse, error)
}

type DestinationService struct {
	summarizer PlaceSummarizer
	extractor  utils.TextGenerator
	cache      mem.Store[string, response_models.DestinationResponse]
	logger     *zap.Logger
}

func NewDestinationService(
	summarizer PlaceSummarizer,
	providers LLMProviders,
	cache mem.Store[string, response_models.DestinationResponse],
	logger *zap.Logger,
) DestinationServiceInterface {
	return &DestinationService{
		summarizer: summarizer,
		extractor:  providers.Default(),
		cache:      cache,
		logger:     logger,
	}
}

// GetDestination never fails on scrape errors, the record is returned
// without thumbnail and intro instead.
func (s *DestinationService) GetDestination(ctx context.Context, name, placeType string) (response_models.DestinationResponse, error) {
	rec := destinations.Record{Name: name, Type: placeType}.Normalize()
	if rec.Name == "" {
		return response_models.DestinationResponse{}, fmt.Errorf("%w: placeName is required", utils.ErrInvalidInput)
	}

	key := rec.Slug + "|" + rec.Type
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	resp := response_models.DestinationResponse{
		Slug: rec.Slug,
		Name: rec.Name,
		Type: rec.Type,
	}

	summary, err := s.summarizer.Summarize(ctx, rec.Name, rec.Type)
	if err != nil {
		s.logger.Warn("destination summary failed",
			zap.String("name", rec.Name), zap.String("type", rec.Type), zap.Error(err))
		return resp, nil
	}

	resp.Thumbnail = summary.Thumbnail
	resp.Intro = summary.Intro
	s.cache.Set(key, resp, destinationCacheTTL)
	return resp, nil
}

const extractPrompt = `Liệt kê các địa danh du lịch (thành phố, tỉnh, điểm tham quan) được nhắc đến trong đoạn văn sau.
Chỉ trả về một mảng JSON, không giải thích, theo dạng:
[{"name": "Cần Thơ", "type": "thành phố"}, {"name": "Kiên Giang", "type": "tỉnh"}]
"type" là một trong: "thành phố", "tỉnh", "địa điểm".

Đoạn văn:
%s`

type extractedPlace struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *DestinationService) ExtractDestinations(ctx context.Context, text string) ([]response_models.DestinationResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", utils.ErrInvalidInput)
	}
	if s.extractor == nil {
		return nil, fmt.Errorf("%w: no provider configured", utils.ErrUnexpectedBehaviorOfAI)
	}

	raw, err := s.extractor.GenerateText(ctx, "", nil, fmt.Sprintf(extractPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}

	var places []extractedPlace
	if err := json.Unmarshal([]byte(jsonx.Clean(raw)), &places); err != nil {
		return nil, fmt.Errorf("%w: decode places: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}

	// dedupe by slug, first mention wins
	seen := make(map[string]bool, len(places))
	unique := places[:0]
	for _, p := range places {
		key := destinations.Slugify(p.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, p)
	}

	out := make([]response_models.DestinationResponse, len(unique))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, p := range unique {
		g.Go(func() error {
			rec, err := s.GetDestination(gctx, p.Name, p.Type)
			if err != nil {
				return err
			}
			out[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
