package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tempmon_dashboard/internal/models"
	"tempmon_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 30 * time.Second
	minInterval      = 10 * time.Millisecond
	maxInterval      = 10 * time.Minute
	maxIntervalMilli = 600_000

	msgFragments = "fragments"
	msgError     = "error"
	msgSelect    = "select"
)

// wsEnvelope is the shape of every message on the stream.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// selectMessage is sent by the page when a selector changes.
type selectMessage struct {
	Type       string `json:"type"`
	FacilityID string `json:"facility_id"`
	Hours      int    `json:"hours"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live dashboard stream
// @Description  Pushes refreshed dashboard fragments on connect, every interval, and after each 'select' message.
// @Tags         dashboard
// @Param        interval     query  string  false  "Go duration, e.g. 30s"
// @Param        interval_ms  query  int     false  "Interval in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	v, err := h.services.Dashboard.View(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadView, "view_load_failed", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()
	h.metrics.StreamOpened()
	defer h.metrics.StreamClosed()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	selects := make(chan models.Selection, 1)
	go h.startReader(conn, done, selects)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	if err := h.sendFragments(c, conn, v, v.Selection()); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case sel := <-selects:
			ticker.Reset(interval)
			if err := h.sendFragments(c, conn, v, sel); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendFragments(c, conn, v, v.Selection()); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=30s or ?interval_ms=30000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	interval := h.cfg.RefreshInterval
	if interval <= 0 {
		interval = defaultInterval
	}

	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= int(minInterval.Milliseconds()) && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return interval
}

// startReader drains incoming messages, forwarding selector changes and
// detecting closure. Only the newest pending selection is kept.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}, selects chan models.Selection) {
	defer close(done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		var msg selectMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Type != msgSelect {
			continue
		}
		sel := models.Selection{FacilityID: msg.FacilityID, Hours: msg.Hours}.Normalize()
		select {
		case <-selects:
		default:
		}
		selects <- sel
	}
}

// sendFragments runs one refresh cycle and writes the resulting fragments.
// A superseded cycle writes nothing; a failed one still sends the banners.
func (h *Handler) sendFragments(c *gin.Context, conn *websocket.Conn, v *service.View, sel models.Selection) error {
	err := h.refresh(c, v, sel)
	if errors.Is(err, service.ErrStaleRefresh) {
		return nil
	}
	fragments, rerr := h.renderer.Fragments(h.dashboardModel(v))
	if rerr != nil {
		if h.log != nil {
			h.log.Errorw("ws_render_failed", "err", rerr)
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(wsEnvelope{Type: msgError, Error: errRender})
	}
	env := wsEnvelope{Type: msgFragments, Data: fragments}
	if err != nil {
		env.Error = err.Error()
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
