package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	dbm "vivubot/internal/models/db_models"
	"vivubot/pkg/utils"
)

var errBoom = errors.New("boom")

type fakeChatRepo struct {
	mu       sync.Mutex
	sessions map[string]*dbm.ChatHistoryDocument
	err      error
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{sessions: map[string]*dbm.ChatHistoryDocument{}}
}

func (r *fakeChatRepo) AppendMessage(_ context.Context, sessionID string, userID *string, msg dbm.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	doc, ok := r.sessions[sessionID]
	if !ok {
		doc = &dbm.ChatHistoryDocument{SessionID: sessionID, CreatedAt: msg.Timestamp}
		r.sessions[sessionID] = doc
	}
	if doc.User == nil && userID != nil {
		u := *userID
		doc.User = &u
	}
	doc.Messages = append(doc.Messages, dbm.ChatHistoryMessage{Sender: msg.Sender, Message: msg.Message, Timestamp: msg.Timestamp})
	return nil
}

func (r *fakeChatRepo) GetMessages(_ context.Context, sessionID string) ([]dbm.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	doc, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]dbm.ChatMessage, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		out = append(out, dbm.ChatMessage{Sender: m.Sender, Message: m.Message, Timestamp: m.Timestamp})
	}
	return out, nil
}

func (r *fakeChatRepo) ListSessions(_ context.Context, userID *string) ([]dbm.ChatSessionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []dbm.ChatSessionSummary
	for _, d := range r.sessions {
		if userID != nil && (d.User == nil || *d.User != *userID) {
			continue
		}
		out = append(out, dbm.ChatSessionSummary{SessionID: d.SessionID, CreatedAt: d.CreatedAt, MessageCount: len(d.Messages)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r *fakeChatRepo) DeleteSession(_ context.Context, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	return ok, nil
}

type fakePlanRepo struct {
	plans map[uuid.UUID]dbm.TravelPlan
	err   error
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[uuid.UUID]dbm.TravelPlan{}}
}

func (r *fakePlanRepo) List(_ context.Context, userID *string) ([]dbm.TravelPlan, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []dbm.TravelPlan
	for _, p := range r.plans {
		if userID != nil && (p.UserID == nil || *p.UserID != *userID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id uuid.UUID) (*dbm.TravelPlan, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePlanRepo) Create(_ context.Context, plan *dbm.TravelPlan) error {
	if r.err != nil {
		return r.err
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	r.plans[plan.ID] = *plan
	return nil
}

func (r *fakePlanRepo) Update(_ context.Context, plan *dbm.TravelPlan) error {
	if r.err != nil {
		return r.err
	}
	r.plans[plan.ID] = *plan
	return nil
}

func (r *fakePlanRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.plans[id]
	delete(r.plans, id)
	return ok, nil
}

type fakePrefsRepo struct {
	prefs map[string]dbm.UserPreferences
	err   error
	saves int
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{prefs: map[string]dbm.UserPreferences{}}
}

func (r *fakePrefsRepo) GetByUserID(_ context.Context, userID string) (*dbm.UserPreferences, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePrefsRepo) Save(_ context.Context, prefs *dbm.UserPreferences) error {
	if r.err != nil {
		return r.err
	}
	r.saves++
	r.prefs[prefs.UserID] = *prefs
	return nil
}

// fakeLLM records the last call and answers with a canned reply.
type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	system  string
	history []utils.ChatTurn
	prompt  string
}

func (f *fakeLLM) GenerateText(_ context.Context, system string, history []utils.ChatTurn, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.system = system
	f.history = history
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeLLM) Close() error { return nil }

type fakeSummarizer struct {
	mu      sync.Mutex
	byName  map[string]PlaceSummary
	err     error
	calls   int
	lastTyp string
}

func (f *fakeSummarizer) Summarize(_ context.Context, name, placeType string) (PlaceSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastTyp = placeType
	if f.err != nil {
		return PlaceSummary{}, f.err
	}
	return f.byName[name], nil
}
