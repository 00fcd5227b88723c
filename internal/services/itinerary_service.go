package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	dbm "vivubot/internal/models/db_models"
	"vivubot/internal/models/request_models"
	"vivubot/internal/models/response_models"
	"vivubot/internal/repositories"
	"vivubot/pkg/utils"
)

// LLMProviders maps a canonical provider name to its client. The entry
// under defaultProviderKey is used when a request names none.
type LLMProviders map[string]utils.TextGenerator

const defaultProviderKey = ""

// NewLLMProviders indexes clients by canonical provider name and marks
// defaultName as the default. Nil clients are skipped.
func NewLLMProviders(defaultName string, clients map[string]utils.TextGenerator) (LLMProviders, error) {
	p := LLMProviders{}
	for name, g := range clients {
		if g != nil {
			p[utils.NormalizeProvider(name)] = g
		}
	}
	def, ok := p.Get(defaultName)
	if !ok {
		return nil, fmt.Errorf("%w: default provider %q has no client", utils.ErrUnsupportedProvider, defaultName)
	}
	p[defaultProviderKey] = def
	return p, nil
}

func (p LLMProviders) Get(name string) (utils.TextGenerator, bool) {
	g, ok := p[utils.NormalizeProvider(name)]
	return g, ok && g != nil
}

func (p LLMProviders) Default() utils.TextGenerator {
	return p[defaultProviderKey]
}

// Close releases every distinct client once.
func (p LLMProviders) Close() error {
	seen := make(map[utils.TextGenerator]bool)
	var firstErr error
	for _, g := range p {
		if g == nil || seen[g] {
			continue
		}
		seen[g] = true
		if err := g.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

type ItineraryServiceInterface interface {
	Generate(ctx context.Context, req request_models.GenerateItineraryRequest) (response_models.GenerateItineraryResponse, error)
}

type ItineraryService struct {
	providers       LLMProviders
	preferencesRepo repositories.PreferencesRepository
	logger          *zap.Logger
}

func NewItineraryService(providers LLMProviders, preferencesRepo repositories.PreferencesRepository, logger *zap.Logger) ItineraryServiceInterface {
	return &ItineraryService{
		providers:       providers,
		preferencesRepo: preferencesRepo,
		logger:          logger,
	}
}

const itinerarySystemPrompt = `Bạn là vivu, một chuyên gia lập kế hoạch du lịch Việt Nam. Trả lời bằng tiếng Việt.
Hãy lên kế hoạch du lịch chi tiết gồm: lịch trình theo ngày, địa điểm tham quan, gợi ý ăn uống, phương tiện di chuyển và chi phí ước tính.
Sau phần mô tả, luôn kèm một khối mã JSON duy nhất theo đúng định dạng:
` + "```json" + `
{"route": {"day1": [{"name": "Chợ nổi Cái Răng", "latitude": 10.0016, "longitude": 105.7474, "time": "06:00", "description": "Ăn sáng trên ghe"}], "day2": []}}
` + "```" + `
Khóa ngày là "day1", "day2", ... theo thứ tự; tọa độ là số thập phân.`

func (s *ItineraryService) Generate(ctx context.Context, req request_models.GenerateItineraryRequest) (response_models.GenerateItineraryResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return response_models.GenerateItineraryResponse{}, fmt.Errorf("%w: text is required", utils.ErrInvalidInput)
	}

	var gen utils.TextGenerator
	if strings.TrimSpace(req.AIProvider) == "" {
		gen = s.providers.Default()
	} else {
		var ok bool
		if gen, ok = s.providers.Get(req.AIProvider); !ok {
			return response_models.GenerateItineraryResponse{}, fmt.Errorf("%w: %s", utils.ErrUnsupportedProvider, req.AIProvider)
		}
	}
	if gen == nil {
		return response_models.GenerateItineraryResponse{}, utils.ErrUnsupportedProvider
	}

	system := itinerarySystemPrompt
	if extra := s.preferencesPrompt(ctx, req.UserID); extra != "" {
		system += "\n\n" + extra
	}

	output, err := gen.GenerateText(ctx, system, historyTurns(req.History), text)
	if err != nil {
		return response_models.GenerateItineraryResponse{}, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	return response_models.GenerateItineraryResponse{Output: output}, nil
}

// preferencesPrompt is best effort, a lookup failure only drops the hint.
func (s *ItineraryService) preferencesPrompt(ctx context.Context, userID string) string {
	if userID == "" || s.preferencesRepo == nil {
		return ""
	}
	prefs, err := s.preferencesRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Warn("load preferences failed", zap.String("user_id", userID), zap.Error(err))
		return ""
	}
	if prefs == nil || !prefs.HasPreferences {
		return ""
	}
	return describePreferences(prefs)
}

func describePreferences(p *dbm.UserPreferences) string {
	var lines []string
	add := func(label string, values []string, custom string) {
		all := append([]string(nil), values...)
		if c := strings.TrimSpace(custom); c != "" {
			all = append(all, c)
		}
		if len(all) > 0 {
			lines = append(lines, "- "+label+": "+strings.Join(all, ", "))
		}
	}
	add("Phong cách du lịch", p.TravelStyle, p.CustomTravelStyle)
	add("Loại địa điểm", p.LocationType, p.CustomLocationType)
	add("Ẩm thực", p.CuisineType, p.CustomCuisineType)
	add("Ngân sách", p.BudgetLevel, p.CustomBudgetLevel)
	add("Thời gian du lịch", p.TravelTime, p.CustomTravelTime)

	if len(lines) == 0 {
		return ""
	}
	return "Sở thích của người dùng:\n" + strings.Join(lines, "\n")
}

func historyTurns(history []request_models.HistoryTurn) []utils.ChatTurn {
	turns := make([]utils.ChatTurn, 0, len(history))
	for _, h := range history {
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		role := "user"
		if h.Sender == dbm.SenderBot || h.Sender == "assistant" {
			role = "assistant"
		}
		turns = append(turns, utils.ChatTurn{Role: role, Content: h.Text})
	}
	return turns
}
