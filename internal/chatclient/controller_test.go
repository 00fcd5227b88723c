package chatclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vivubot/internal/destinations"
	"vivubot/internal/itinerary"
)

const canThoOutput = "Dưới đây là lịch trình 3 ngày ở Cần Thơ.\n" +
	"```json {\"route\": {\"day1\": [{\"name\":\"Chùa Dơi\",\"latitude\":9.602521,\"longitude\":105.968685,\"time\":\"06:00\"}]}} ```"

func waitStarted(t *testing.T, s *fakeStore, id string) {
	t.Helper()
	for {
		select {
		case got := <-s.started:
			if got == id {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("fetch for %s never started", id)
		}
	}
}

func TestController_SendEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	gen := replyWith(canThoOutput)
	c := NewController(store, gen, WithIDGenerator(sequentialIDs("s1")), WithUserID("u1"))
	c.NewSession()

	require.NoError(t, c.Send(ctx, "3 ngày ở Cần Thơ"))

	s := c.Snapshot()
	require.Len(t, s.Messages, 3)
	assert.Equal(t, Message{Sender: SenderBot, Text: Greeting}, s.Messages[0])
	assert.Equal(t, Message{Sender: SenderUser, Text: "3 ngày ở Cần Thơ"}, s.Messages[1])
	assert.Equal(t, Message{Sender: SenderBot, Text: "Dưới đây là lịch trình 3 ngày ở Cần Thơ."}, s.Messages[2])

	assert.Equal(t, itinerary.Route{"day1": {{
		Name:      "Chùa Dơi",
		Latitude:  9.602521,
		Longitude: 105.968685,
		Time:      "06:00",
	}}}, s.Route)
	assert.Equal(t, "day1", s.SelectedDay)
	assert.False(t, s.Loading)

	saved := store.savedMessages()
	require.Len(t, saved, 2)
	assert.Equal(t, savedMessage{SessionID: "s1", Sender: SenderUser, Text: "3 ngày ở Cần Thơ", UserID: "u1"}, saved[0])
	assert.Equal(t, canThoOutput, saved[1].Text, "the raw reply is stored so the route survives a reload")

	calls := gen.calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].History, "the greeting is not sent as history")
	assert.Equal(t, "gpt", calls[0].Provider)
	assert.Equal(t, "u1", calls[0].UserID)
}

func TestController_SendTransportFailure(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	netErr := errors.New("dial tcp: connection refused")
	gen := replyWith(canThoOutput)
	c := NewController(store, gen, WithIDGenerator(sequentialIDs("s1")))
	c.NewSession()
	require.NoError(t, c.Send(ctx, "3 ngày ở Cần Thơ"))
	before := c.Snapshot()

	gen.reply = func(GenerateRequest) (string, error) { return "", netErr }
	err := c.Send(ctx, "thêm ngày 2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, netErr))

	after := c.Snapshot()
	require.Len(t, after.Messages, len(before.Messages)+2)
	assert.Equal(t, Message{Sender: SenderUser, Text: "thêm ngày 2"}, after.Messages[len(after.Messages)-2])
	assert.Equal(t, Message{Sender: SenderBot, Text: Apology}, after.Messages[len(after.Messages)-1])
	assert.Equal(t, before.Route, after.Route)
	assert.False(t, after.Loading)

	saved := store.savedMessages()
	assert.Equal(t, Apology, saved[len(saved)-1].Text)

	calls := gen.calls()
	require.Len(t, calls, 2)
	assert.Len(t, calls[1].History, 2)
}

func TestController_ParseFailureResetsRoute(t *testing.T) {
	ctx := context.Background()
	gen := replyWith(canThoOutput)
	c := NewController(newFakeStore(), gen)
	require.NoError(t, c.Send(ctx, "3 ngày ở Cần Thơ"))
	require.NoError(t, c.SelectDay("day1"))

	gen.reply = func(GenerateRequest) (string, error) { return "Bạn muốn đi mấy ngày?", nil }
	require.NoError(t, c.Send(ctx, "hmm"))

	s := c.Snapshot()
	assert.Equal(t, itinerary.DefaultRoute(), s.Route)
	assert.Equal(t, "day1", s.SelectedDay)
	assert.Equal(t, "Bạn muốn đi mấy ngày?", s.Messages[len(s.Messages)-1].Text)
}

func TestController_EmptyReply(t *testing.T) {
	c := NewController(newFakeStore(), replyWith("   "))
	require.NoError(t, c.Send(context.Background(), "xin chào"))
	s := c.Snapshot()
	assert.Equal(t, EmptyReply, s.Messages[len(s.Messages)-1].Text)
}

func TestController_BlankSendIsNoop(t *testing.T) {
	store := newFakeStore()
	gen := replyWith("x")
	c := NewController(store, gen)

	require.NoError(t, c.Send(context.Background(), "  \n\t "))
	assert.Empty(t, gen.calls())
	assert.Empty(t, store.savedMessages())
	assert.Len(t, c.Snapshot().Messages, 1)
}

func TestController_SendWhileLoading(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	entered := make(chan struct{})
	gen := &fakeGenerator{reply: func(GenerateRequest) (string, error) {
		close(entered)
		<-release
		return "ok", nil
	}}
	c := NewController(newFakeStore(), gen)

	done := make(chan error, 1)
	go func() { done <- c.Send(ctx, "một") }()
	<-entered

	assert.True(t, c.Snapshot().Loading)
	assert.ErrorIs(t, c.Send(ctx, "hai"), ErrSendInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Snapshot().Loading)
	assert.Len(t, gen.calls(), 1)
}

func TestController_ReplyForAbandonedSession(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	release := make(chan struct{})
	entered := make(chan struct{})
	gen := &fakeGenerator{reply: func(GenerateRequest) (string, error) {
		close(entered)
		<-release
		return canThoOutput, nil
	}}
	c := NewController(store, gen, WithIDGenerator(sequentialIDs("old", "new")))
	c.NewSession()

	done := make(chan error, 1)
	go func() { done <- c.Send(ctx, "3 ngày ở Cần Thơ") }()
	<-entered
	c.NewSession()
	close(release)
	require.NoError(t, <-done)

	s := c.Snapshot()
	assert.Equal(t, "new", s.SessionID)
	assert.Equal(t, greetingMessages(), s.Messages)
	assert.Equal(t, itinerary.DefaultRoute(), s.Route)

	saved := store.savedMessages()
	require.Len(t, saved, 2)
	assert.Equal(t, "old", saved[1].SessionID)
	assert.Equal(t, canThoOutput, saved[1].Text)
}

func TestController_NewSessionThenSelectDay(t *testing.T) {
	c := NewController(newFakeStore(), replyWith(""))
	c.SetFullscreen(true)
	id := c.NewSession()

	assert.NotEmpty(t, id)
	assert.NoError(t, c.SelectDay("day1"))

	s := c.Snapshot()
	assert.Equal(t, "day1", s.SelectedDay)
	assert.False(t, s.Fullscreen)
	assert.Equal(t, greetingMessages(), s.Messages)

	assert.ErrorIs(t, c.SelectDay("day9"), ErrUnknownDay)
	assert.Equal(t, "day1", c.Snapshot().SelectedDay)
}

func TestController_LoadSessionRace(t *testing.T) {
	ctx := context.Background()

	t.Run("older load resolves last", func(t *testing.T) {
		store := newFakeStore()
		store.histories["A"] = []Message{{Sender: SenderUser, Text: "from A"}}
		store.histories["B"] = []Message{{Sender: SenderUser, Text: "from B"}}
		releaseA := store.gate("A")
		c := NewController(store, replyWith(""))

		applied := make(chan bool, 1)
		go func() { applied <- c.LoadSession(ctx, "A") }()
		waitStarted(t, store, "A")

		assert.True(t, c.LoadSession(ctx, "B"))
		releaseA()
		assert.False(t, <-applied)

		s := c.Snapshot()
		assert.Equal(t, "B", s.SessionID)
		assert.Equal(t, []Message{{Sender: SenderUser, Text: "from B"}}, s.Messages)
	})

	t.Run("newer load resolves last", func(t *testing.T) {
		store := newFakeStore()
		store.histories["A"] = []Message{{Sender: SenderUser, Text: "from A"}}
		store.histories["B"] = []Message{{Sender: SenderUser, Text: "from B"}}
		releaseB := store.gate("B")
		c := NewController(store, replyWith(""))

		assert.True(t, c.LoadSession(ctx, "A"))
		applied := make(chan bool, 1)
		go func() { applied <- c.SelectSession(ctx, "B") }()
		waitStarted(t, store, "B")
		releaseB()
		assert.True(t, <-applied)

		assert.Equal(t, []Message{{Sender: SenderUser, Text: "from B"}}, c.Snapshot().Messages)
	})

	t.Run("new session discards pending load", func(t *testing.T) {
		store := newFakeStore()
		store.histories["A"] = []Message{{Sender: SenderUser, Text: "from A"}}
		releaseA := store.gate("A")
		c := NewController(store, replyWith(""), WithIDGenerator(sequentialIDs("fresh")))

		applied := make(chan bool, 1)
		go func() { applied <- c.LoadSession(ctx, "A") }()
		waitStarted(t, store, "A")
		c.NewSession()
		releaseA()

		assert.False(t, <-applied)
		assert.Equal(t, greetingMessages(), c.Snapshot().Messages)
	})

	t.Run("send during load keeps the new turn", func(t *testing.T) {
		store := newFakeStore()
		store.histories["A"] = []Message{{Sender: SenderUser, Text: "old"}}
		releaseA := store.gate("A")
		c := NewController(store, replyWith(canThoOutput))

		applied := make(chan bool, 1)
		go func() { applied <- c.LoadSession(ctx, "A") }()
		waitStarted(t, store, "A")

		require.NoError(t, c.Send(ctx, "new question"))
		releaseA()
		assert.False(t, <-applied)

		s := c.Snapshot()
		assert.Equal(t, "A", s.SessionID)
		require.NotEmpty(t, s.Messages)
		last := s.Messages[len(s.Messages)-1]
		assert.Equal(t, Message{Sender: SenderBot, Text: "Dưới đây là lịch trình 3 ngày ở Cần Thơ."}, last)
		assert.Equal(t, Message{Sender: SenderUser, Text: "new question"}, s.Messages[len(s.Messages)-2])
		assert.True(t, s.Route.Has("day1"))
		assert.NotEmpty(t, s.Route.Stops("day1"))
	})
}

func TestController_LoadSession(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.histories["s1"] = []Message{
		{Sender: SenderUser, Text: "3 ngày ở Cần Thơ"},
		{Sender: SenderBot, Text: canThoOutput},
	}
	c := NewController(store, replyWith(""))
	before := c.Snapshot().Route

	require.True(t, c.LoadSession(ctx, "s1"))
	s := c.Snapshot()
	require.Len(t, s.Messages, 2)
	assert.Equal(t, "Dưới đây là lịch trình 3 ngày ở Cần Thơ.", s.Messages[1].Text)
	assert.Equal(t, before, s.Route, "loading history does not touch the route")

	require.True(t, c.LoadSession(ctx, "missing"))
	assert.Equal(t, greetingMessages(), c.Snapshot().Messages)
}

func TestController_StartResumesRememberedSession(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.histories["kept"] = []Message{{Sender: SenderUser, Text: "hello"}}
	state := &MemoryStateStore{}
	require.NoError(t, state.SetSessionID("kept"))

	c := NewController(store, replyWith(""), WithStateStore(state))
	require.NoError(t, c.Start(ctx))
	assert.Equal(t, "kept", c.SessionID())
	assert.Len(t, c.Snapshot().Messages, 1)

	fresh := &MemoryStateStore{}
	c2 := NewController(store, replyWith(""), WithStateStore(fresh), WithIDGenerator(sequentialIDs("generated")))
	require.NoError(t, c2.Start(ctx))
	id, _ := fresh.SessionID()
	assert.Equal(t, "generated", id)
}

func TestController_DeleteActiveSession(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.histories["s1"] = []Message{{Sender: SenderUser, Text: "hi"}}
	c := NewController(store, replyWith(""), WithIDGenerator(sequentialIDs("s2")))
	c.LoadSession(ctx, "s1")

	require.NoError(t, c.DeleteSession(ctx, "s1"))
	assert.Equal(t, "s2", c.SessionID())
	assert.Error(t, c.DeleteSession(ctx, "unknown"))
}

func TestController_RecordsDestinations(t *testing.T) {
	ctx := context.Background()
	cache, err := destinations.NewCache(ctx, "u1", destinations.NewMemoryStore())
	require.NoError(t, err)
	events, cancel, err := cache.Subscribe(ctx, 2)
	require.NoError(t, err)
	defer cancel()

	lookup := &fakeLookup{
		fail: map[string]bool{"Bến Ninh Kiều": true},
		many: []destinations.Record{{Name: "Cần Thơ", Type: "thành phố"}, {Name: "Chùa Dơi"}},
	}
	reply := "Lịch trình:\n```json\n" +
		`{"route": {"day2": [{"name": "Bến Ninh Kiều", "latitude": 10.03, "longitude": 105.78, "time": "19:00"}], "day1": [{"name": "Chùa Dơi", "latitude": 9.60, "longitude": 105.96, "time": "06:00"}]}}` +
		"\n```"
	c := NewController(newFakeStore(), replyWith(reply), WithDestinations(cache, lookup))

	require.NoError(t, c.Send(ctx, "Cần Thơ"))
	c.Wait()

	list := cache.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Chùa Dơi", list[0].Name)
	assert.NotEmpty(t, list[0].Thumbnail)
	assert.Equal(t, "Bến Ninh Kiều", list[1].Name)
	assert.Empty(t, list[1].Thumbnail, "failed enrichment still records the place")
	assert.Equal(t, "Cần Thơ", list[2].Name)

	select {
	case ev := <-events:
		assert.Len(t, ev.Records, 3)
	case <-time.After(time.Second):
		t.Fatal("expected a destination event")
	}

	require.NoError(t, c.Send(ctx, "lại nữa"))
	c.Wait()
	assert.Len(t, cache.List(), 3)
}

func TestController_SendDoesNotWaitForDestinations(t *testing.T) {
	ctx := context.Background()
	cache, err := destinations.NewCache(ctx, "u1", destinations.NewMemoryStore())
	require.NoError(t, err)

	lookup := &fakeLookup{release: make(chan struct{}), many: []destinations.Record{{Name: "Cần Thơ"}}}
	c := NewController(newFakeStore(), replyWith(canThoOutput), WithDestinations(cache, lookup))

	require.NoError(t, c.Send(ctx, "3 ngày ở Cần Thơ"))
	assert.False(t, c.Snapshot().Loading)
	assert.Equal(t, 0, cache.Len())

	close(lookup.release)
	c.Wait()
	names := []string{}
	for _, r := range cache.List() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Chùa Dơi", "Cần Thơ"}, names)
}

func TestController_CloseCancelsDestinationRecording(t *testing.T) {
	ctx := context.Background()
	cache, err := destinations.NewCache(ctx, "u1", destinations.NewMemoryStore())
	require.NoError(t, err)

	lookup := &fakeLookup{release: make(chan struct{}), many: []destinations.Record{{Name: "Cần Thơ"}}}
	c := NewController(newFakeStore(), replyWith(canThoOutput), WithDestinations(cache, lookup))
	require.NoError(t, c.Send(ctx, "3 ngày ở Cần Thơ"))

	done := make(chan struct{})
	go func() {
		c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return while a lookup was pending")
	}
	for _, r := range cache.List() {
		assert.NotEqual(t, "Cần Thơ", r.Name)
	}
}

func TestController_Subscribe(t *testing.T) {
	c := NewController(newFakeStore(), replyWith(canThoOutput))
	states, cancel := c.Subscribe(8)

	first := <-states
	assert.Equal(t, greetingMessages(), first.Messages)

	require.NoError(t, c.Send(context.Background(), "Cần Thơ"))
	cancel()

	var last State
	for s := range states {
		last = s
	}
	assert.False(t, last.Loading)
	assert.Len(t, last.Messages, 3)
	assert.Equal(t, "day1", last.SelectedDay)
}
