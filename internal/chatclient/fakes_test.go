package chatclient

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vivubot/internal/destinations"
)

type savedMessage struct {
	SessionID string
	Sender    string
	Text      string
	UserID    string
}

type fakeStore struct {
	mu        sync.Mutex
	histories map[string][]Message
	sessions  []SessionSummary
	saved     []savedMessage
	deleted   []string
	gates     map[string]chan struct{}
	started   chan string
	saveErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		histories: make(map[string][]Message),
		gates:     make(map[string]chan struct{}),
		started:   make(chan string, 16),
	}
}

// gate makes FetchHistory(id) block until the returned func is called.
func (s *fakeStore) gate(id string) func() {
	ch := make(chan struct{})
	s.mu.Lock()
	s.gates[id] = ch
	s.mu.Unlock()
	return func() { close(ch) }
}

func (s *fakeStore) FetchHistory(ctx context.Context, id string) []Message {
	select {
	case s.started <- id:
	default:
	}
	s.mu.Lock()
	gate := s.gates[id]
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.histories[id]...)
}

func (s *fakeStore) FetchSessions(ctx context.Context, userID string) []SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions
}

func (s *fakeStore) SaveMessage(ctx context.Context, id, sender, text, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, savedMessage{SessionID: id, Sender: sender, Text: text, UserID: userID})
	return nil
}

func (s *fakeStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.histories[id]; !ok {
		return errors.New("not found")
	}
	delete(s.histories, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *fakeStore) savedMessages() []savedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]savedMessage(nil), s.saved...)
}

type fakeGenerator struct {
	mu       sync.Mutex
	requests []GenerateRequest
	reply    func(req GenerateRequest) (string, error)
}

func (g *fakeGenerator) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	reply := g.reply
	g.mu.Unlock()
	return reply(req)
}

func (g *fakeGenerator) calls() []GenerateRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]GenerateRequest(nil), g.requests...)
}

func replyWith(text string) *fakeGenerator {
	return &fakeGenerator{reply: func(GenerateRequest) (string, error) { return text, nil }}
}

type fakeLookup struct {
	mu    sync.Mutex
	fail  map[string]bool
	many  []destinations.Record
	calls []string
	// release, when set, holds LookupMany until closed or ctx is done
	release chan struct{}
}

func (l *fakeLookup) Lookup(ctx context.Context, name, typ string) (destinations.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, name)
	if l.fail[name] {
		return destinations.Record{}, fmt.Errorf("wikipedia down")
	}
	return destinations.Record{
		Name:      name,
		Type:      typ,
		Thumbnail: "https://upload.example/" + destinations.Slugify(name) + ".jpg",
		Intro:     name + " là một địa danh.",
	}, nil
}

func (l *fakeLookup) LookupMany(ctx context.Context, text string) ([]destinations.Record, error) {
	if l.release != nil {
		select {
		case <-l.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return l.many, nil
}

func sequentialIDs(ids ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		if i >= len(ids) {
			i++
			return fmt.Sprintf("session-%d", i)
		}
		id := ids[i]
		i++
		return id
	}
}
