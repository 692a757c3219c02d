package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"campaign_forum/internal/models"
	"campaign_forum/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", defaultInterval},
		{"duration", "/ws?interval=200ms", 200 * time.Millisecond},
		{"bare_milliseconds", "/ws?interval=150", 150 * time.Millisecond},
		{"at_max", "/ws?interval=10s", maxInterval},
		{"duration_too_large", "/ws?interval=20s", defaultInterval},
		{"milliseconds_too_large", "/ws?interval=20000", defaultInterval},
		{"zero", "/ws?interval=0", defaultInterval},
		{"negative", "/ws?interval=-5ms", defaultInterval},
		{"garbage", "/ws?interval=bogus", defaultInterval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := h.parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestParseInterval_ConfiguredDefault(t *testing.T) {
	h := NewHandler(&service.Service{}, nil, WithFeedInterval(5*time.Second))

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/ws/campaigns?interval=1h", nil)
	if got := h.parseInterval(c); got != 5*time.Second {
		t.Fatalf("got %v, want 5s", got)
	}
}

// liveBoard is a campaign store whose list the test changes while a feed is polling it.
type liveBoard struct {
	*mockCampaigns

	mu    sync.Mutex
	list  []models.Campaign
	err   error
	calls int
}

func newLiveBoard(cs ...models.Campaign) *liveBoard {
	return &liveBoard{mockCampaigns: newMockCampaigns(), list: cs}
}

func (b *liveBoard) List(ctx context.Context) ([]models.Campaign, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	return append([]models.Campaign(nil), b.list...), nil
}

func (b *liveBoard) set(err error, cs ...models.Campaign) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
	if cs != nil {
		b.list = cs
	}
}

// waitForCalls blocks until the feed has polled at least n more times.
func (b *liveBoard) waitForCalls(t *testing.T, n int) {
	t.Helper()
	b.mu.Lock()
	target := b.calls + n
	b.mu.Unlock()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		b.mu.Lock()
		done := b.calls >= target
		b.mu.Unlock()
		if done {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("feed did not poll %d more times", n)
}

func boardCampaign(id, office string) models.Campaign {
	return models.Campaign{
		ID:       id,
		AuthorID: 1,
		CampaignFields: models.CampaignFields{
			CandidateName: "Jane Roe",
			Office:        office,
			DesiredBudget: 1000000,
		},
	}
}

func dialFeed(t *testing.T, campaigns service.Campaigns, query string) *websocket.Conn {
	t.Helper()
	r := gin.New()
	h := NewHandler(&service.Service{Campaigns: campaigns}, nil)
	r.GET("/ws/campaigns", h.wsCampaigns)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws/campaigns"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readBoard(t *testing.T, conn *websocket.Conn) []models.Campaign {
	t.Helper()
	var env struct {
		Type string            `json:"type"`
		Data []models.Campaign `json:"data"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read board: %v", err)
	}
	if env.Type != envelopeCampaigns {
		t.Fatalf("unexpected envelope type %q", env.Type)
	}
	return env.Data
}

func TestWebSocket_PushesOnlyWhenBoardChanges(t *testing.T) {
	board := newLiveBoard(boardCampaign("c1", "Mayor"))
	conn := dialFeed(t, board, "interval=20ms")

	got := readBoard(t, conn)
	if len(got) != 1 || got[0].Office != "Mayor" || got[0].DesiredBudget != 1000000 {
		t.Fatalf("unexpected initial board: %+v", got)
	}

	// Several unchanged refreshes go by; none of them may reach the client.
	board.waitForCalls(t, 3)
	board.set(nil, boardCampaign("c1", "Mayor"), boardCampaign("c2", "Governor"))

	got = readBoard(t, conn)
	if len(got) != 2 || got[1].Office != "Governor" {
		t.Fatalf("next message is not the changed board: %+v", got)
	}
}

func TestWebSocket_RefreshErrorKeepsSubscriber(t *testing.T) {
	board := newLiveBoard(boardCampaign("c1", "Mayor"))
	conn := dialFeed(t, board, "interval=20ms")
	readBoard(t, conn)

	board.set(errors.New("database is locked"))
	board.waitForCalls(t, 2)
	board.set(nil, boardCampaign("c2", "Governor"))

	got := readBoard(t, conn)
	if len(got) != 1 || got[0].ID != "c2" {
		t.Fatalf("unexpected board after recovery: %+v", got)
	}
}

func TestWebSocket_EmptyBoardIsAnEmptyList(t *testing.T) {
	conn := dialFeed(t, newLiveBoard(), "")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(env["data"]) != "[]" {
		t.Fatalf("want empty list, got %s", raw)
	}
}

func TestWebSocket_InitialListErrorCloses(t *testing.T) {
	campaigns := newMockCampaigns()
	campaigns.listErr = errors.New("boom")
	conn := dialFeed(t, campaigns, "")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("expected close, got message: %s", raw)
	}
	if !websocket.IsCloseError(err, websocket.CloseInternalServerErr) {
		t.Fatalf("unexpected close: %v", err)
	}
}
