package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"campaign_forum/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	defaultInterval = 2 * time.Second
	maxInterval     = 10 * time.Second

	feedWriteWait = 10 * time.Second
	feedPongWait  = 60 * time.Second
	feedPingEvery = feedPongWait * 9 / 10
	feedReadLimit = 512 // subscribers only send control frames

	envelopeCampaigns = "campaigns"
)

type wsEnvelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// The board is the same public data as /campaign/list, so any origin may subscribe.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// boardFeed is one subscriber's copy of the board. last holds the payload it received most
// recently; an identical snapshot is never resent.
type boardFeed struct {
	conn *websocket.Conn
	list func(context.Context) ([]models.Campaign, error)
	last []byte
}

func (f *boardFeed) snapshot(ctx context.Context) ([]byte, error) {
	campaigns, err := f.list(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	return json.Marshal(wsEnvelope{Type: envelopeCampaigns, Data: campaigns})
}

// send writes payload unless it equals the last board this subscriber got.
func (f *boardFeed) send(payload []byte) error {
	if bytes.Equal(payload, f.last) {
		return nil
	}
	_ = f.conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
	if err := f.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	f.last = payload
	return nil
}

// wsCampaigns serves the live board: the full list on connect, then again whenever a refresh
// finds it changed.
func (h *Handler) wsCampaigns(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.feedLog("ws_upgrade_failed", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ctx := c.Request.Context()
	feed := &boardFeed{conn: conn, list: h.services.Campaigns.List}

	// A subscriber that cannot get a first board is told why and dropped.
	first, err := feed.snapshot(ctx)
	if err == nil {
		err = feed.send(first)
	}
	if err != nil {
		h.feedLog("ws_initial_board_failed", err)
		msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, errListCampaigns)
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(feedWriteWait))
		return
	}

	gone := watchPeer(conn)
	refresh := time.NewTicker(interval)
	defer refresh.Stop()
	ping := time.NewTicker(feedPingEvery)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteWait)); err != nil {
				h.feedLog("ws_ping_failed", err)
				return
			}
		case <-refresh.C:
			payload, err := feed.snapshot(ctx)
			if err != nil {
				// keep the subscriber, the next tick retries
				h.feedLog("ws_board_refresh_failed", err)
				continue
			}
			if err := feed.send(payload); err != nil {
				h.feedLog("ws_write_failed", err)
				return
			}
		}
	}
}

// watchPeer keeps a read in flight so pongs and close frames are processed. The returned channel
// closes when the peer disconnects or stops answering pings.
func watchPeer(conn *websocket.Conn) <-chan struct{} {
	conn.SetReadLimit(feedReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
	return gone
}

// parseInterval reads ?interval= as a Go duration ("500ms") or a bare number of milliseconds.
// Anything missing, non-positive or above maxInterval falls back to the configured interval.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	raw := c.Query("interval")
	if raw == "" {
		return h.feedInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		ms, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return h.feedInterval
		}
		d = time.Duration(ms) * time.Millisecond
	}
	if d <= 0 || d > maxInterval {
		return h.feedInterval
	}
	return d
}

func (h *Handler) feedLog(event string, err error) {
	if h.log != nil {
		h.log.Infow(event, "err", err)
	}
}
