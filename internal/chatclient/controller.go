package chatclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vivubot/internal/destinations"
	"vivubot/internal/itinerary"
	"vivubot/pkg/utils"
)

// EmptyReply is shown when the generator answers with no text at all.
const EmptyReply = "No response from AI."

// Controller owns the chat page state: messages, route, selected day,
// loading flag and active session. Network calls never run under mu.
type Controller struct {
	store     SessionStore
	generator Generator

	state        StateStore
	destinations *destinations.Cache
	lookup       Lookup
	logger       *zap.Logger
	provider     string
	userID       string
	newID        func() string

	mu          sync.Mutex
	sessionID   string
	messages    []Message
	route       itinerary.Route
	selectedDay string
	loading     bool
	fullscreen  bool
	loadGen     uint64

	subs    map[int]chan State
	nextSub int

	// destination recording outlives Send but not the controller
	bgCtx    context.Context
	bgCancel context.CancelFunc
	bg       sync.WaitGroup
}

func NewController(store SessionStore, generator Generator, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		generator: generator,
		state:     &MemoryStateStore{},
		logger:    zap.NewNop(),
		provider:  utils.ProviderGPT,
		newID:     defaultID,
		messages:  greetingMessages(),
		route:     itinerary.DefaultRoute(),
		subs:      make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.selectedDay = c.route.FirstDay()
	c.bgCtx, c.bgCancel = context.WithCancel(context.Background())
	return c
}

// Wait blocks until destination recording started by earlier sends is done.
func (c *Controller) Wait() {
	c.bg.Wait()
}

// Close stops background destination recording and waits for it to exit.
func (c *Controller) Close() {
	c.bgCancel()
	c.bg.Wait()
}

// Start resumes the remembered session, or opens a new one when none is
// remembered.
func (c *Controller) Start(ctx context.Context) error {
	id, err := c.state.SessionID()
	if err != nil {
		c.logger.Warn("failed to read remembered session", zap.Error(err))
	}
	if id == "" {
		c.NewSession()
		return nil
	}
	c.LoadSession(ctx, id)
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// LoadSession makes id the active session and replaces the messages with its
// stored history, or the greeting when there is none. The route is kept.
// A result is applied only if no later load, switch or new session happened
// in the meantime; it reports whether it was applied.
func (c *Controller) LoadSession(ctx context.Context, id string) bool {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.sessionID = id
	c.mu.Unlock()

	history := c.store.FetchHistory(ctx, id)
	msgs := make([]Message, 0, len(history))
	for _, m := range history {
		if m.Sender == SenderBot {
			m.Text = itinerary.Display(m.Text)
		}
		msgs = append(msgs, m)
	}
	if len(msgs) == 0 {
		msgs = greetingMessages()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.loadGen || id != c.sessionID {
		c.logger.Debug("discarding stale history", zap.String("session_id", id))
		return false
	}
	c.messages = msgs
	c.publishLocked()
	return true
}

// SelectSession remembers id and loads it.
func (c *Controller) SelectSession(ctx context.Context, id string) bool {
	if err := c.state.SetSessionID(id); err != nil {
		c.logger.Warn("failed to remember session", zap.String("session_id", id), zap.Error(err))
	}
	return c.LoadSession(ctx, id)
}

// NewSession starts a fresh conversation and returns its id.
func (c *Controller) NewSession() string {
	c.mu.Lock()
	id := c.newID()
	c.sessionID = id
	c.messages = greetingMessages()
	c.route = itinerary.DefaultRoute()
	c.selectedDay = c.route.FirstDay()
	c.fullscreen = false
	c.loadGen++
	c.publishLocked()
	c.mu.Unlock()

	if err := c.state.SetSessionID(id); err != nil {
		c.logger.Warn("failed to remember session", zap.String("session_id", id), zap.Error(err))
	}
	return id
}

// SelectDay changes the highlighted day.
func (c *Controller) SelectDay(day string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.route.Has(day) {
		return fmt.Errorf("%w: %s", ErrUnknownDay, day)
	}
	c.selectedDay = day
	c.publishLocked()
	return nil
}

func (c *Controller) SetFullscreen(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fullscreen = on
	c.publishLocked()
}

// Sessions lists the configured user's sessions, newest first.
func (c *Controller) Sessions(ctx context.Context) []SessionSummary {
	return c.store.FetchSessions(ctx, c.userID)
}

// DeleteSession removes a stored session. Deleting the active one opens a
// new session.
func (c *Controller) DeleteSession(ctx context.Context, id string) error {
	if err := c.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if c.SessionID() == id {
		c.NewSession()
	}
	return nil
}

// Send posts text to the generator and reconciles the reply. Blank text is
// ignored. On a transport failure the apology is shown, the route is kept and
// the error is returned. Places in the reply are recorded in the background.
func (c *Controller) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	route, raw, err := c.exchange(ctx, text)
	if err != nil {
		return err
	}
	if route != nil && c.destinations != nil {
		c.bg.Add(1)
		go func() {
			defer c.bg.Done()
			c.recordDestinations(c.bgCtx, route, raw)
		}()
	}
	return nil
}

func (c *Controller) exchange(ctx context.Context, text string) (itinerary.Route, string, error) {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil, "", ErrSendInFlight
	}
	if c.sessionID == "" {
		c.sessionID = c.newID()
		if err := c.state.SetSessionID(c.sessionID); err != nil {
			c.logger.Warn("failed to remember session", zap.Error(err))
		}
	}
	sid := c.sessionID
	history := historyTurns(c.messages)
	c.messages = append(c.messages, Message{Sender: SenderUser, Text: text})
	// a history fetch still in flight predates this turn
	c.loadGen++
	c.loading = true
	c.publishLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.publishLocked()
		c.mu.Unlock()
	}()

	c.save(ctx, sid, SenderUser, text)

	output, err := c.generator.Generate(ctx, GenerateRequest{
		Text:     text,
		History:  history,
		Provider: c.provider,
		UserID:   c.userID,
	})
	if err != nil {
		c.logger.Error("generation failed", zap.String("session_id", sid), zap.Error(err))
		c.appendBot(sid, Apology, nil)
		c.save(ctx, sid, SenderBot, Apology)
		return nil, "", fmt.Errorf("generate itinerary: %w", err)
	}
	if strings.TrimSpace(output) == "" {
		output = EmptyReply
	}

	display, route, perr := itinerary.ParseRoute(output)
	if perr != nil {
		var pe *itinerary.ParseError
		if errors.As(perr, &pe) {
			c.logger.Debug("no structured route in reply", zap.String("session_id", sid), zap.Error(pe))
		}
		route = itinerary.DefaultRoute()
	}
	installed := c.appendBot(sid, display, route)
	c.save(ctx, sid, SenderBot, output)

	if perr != nil || !installed {
		return nil, output, nil
	}
	return route, output, nil
}

// appendBot shows a bot message and, when route is non-nil, installs it.
// Nothing is shown if the user switched sessions while waiting.
func (c *Controller) appendBot(sid, text string, route itinerary.Route) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionID != sid {
		c.logger.Debug("reply arrived for an inactive session", zap.String("session_id", sid))
		return false
	}
	c.messages = append(c.messages, Message{Sender: SenderBot, Text: text})
	if route != nil {
		c.route = route
		c.selectedDay = route.FirstDay()
	}
	c.publishLocked()
	return true
}

func (c *Controller) save(ctx context.Context, sid, sender, text string) {
	if err := c.store.SaveMessage(ctx, sid, sender, text, c.userID); err != nil {
		c.logger.Warn("failed to save message",
			zap.String("session_id", sid),
			zap.String("sender", sender),
			zap.Error(err))
	}
}

func historyTurns(msgs []Message) []HistoryTurn {
	turns := make([]HistoryTurn, 0, len(msgs))
	for i, m := range msgs {
		if i == 0 && m.Sender == SenderBot && m.Text == Greeting {
			continue
		}
		turns = append(turns, HistoryTurn{Sender: m.Sender, Text: m.Text})
	}
	return turns
}

const lookupConcurrency = 4

// recordDestinations merges the places of route, plus any the lookup service
// extracts from raw, into the destination cache. Enrichment is best effort.
func (c *Controller) recordDestinations(ctx context.Context, route itinerary.Route, raw string) {
	if c.destinations == nil {
		return
	}

	known := make(map[string]struct{})
	for _, r := range c.destinations.List() {
		known[r.Key()] = struct{}{}
	}

	var names []string
	for _, day := range route.Days() {
		for _, stop := range route.Stops(day) {
			name := strings.TrimSpace(stop.Name)
			if name == "" {
				continue
			}
			if _, ok := known[name]; ok {
				continue
			}
			known[name] = struct{}{}
			names = append(names, name)
		}
	}

	records := make([]destinations.Record, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, name := range names {
		records[i] = destinations.Record{Name: name}
		if c.lookup == nil {
			continue
		}
		g.Go(func() error {
			rec, err := c.lookup.Lookup(gctx, name, destinations.DefaultType)
			if err != nil {
				c.logger.Debug("destination lookup failed", zap.String("name", name), zap.Error(err))
				return nil
			}
			rec.Name = name
			records[i] = rec
			return nil
		})
	}
	_ = g.Wait()

	if c.lookup != nil {
		extra, err := c.lookup.LookupMany(ctx, raw)
		if err != nil {
			c.logger.Debug("multi destination lookup failed", zap.Error(err))
		}
		records = append(records, extra...)
	}

	if _, err := c.destinations.RecordMany(ctx, records); err != nil {
		c.logger.Warn("failed to record destinations", zap.Error(err))
	}
}

// Subscribe returns a channel of state snapshots. The newest snapshot
// replaces an unread one when the buffer is full.
func (c *Controller) Subscribe(buffer int) (<-chan State, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan State, buffer)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.snapshotLocked()
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
}

func (c *Controller) publishLocked() {
	if len(c.subs) == 0 {
		return
	}
	s := c.snapshotLocked()
	for _, ch := range c.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s:
			default:
			}
		}
	}
}

func (c *Controller) snapshotLocked() State {
	return State{
		SessionID:   c.sessionID,
		Messages:    append([]Message(nil), c.messages...),
		Route:       c.route.Clone(),
		SelectedDay: c.selectedDay,
		Loading:     c.loading,
		Fullscreen:  c.fullscreen,
	}
}
