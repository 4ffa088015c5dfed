package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"blogicum/models"
	"blogicum/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// ViewerGauge counts open live connections.
type ViewerGauge interface {
	ViewerConnected()
	ViewerDisconnected()
}

type WebSocketHandler struct {
	hubService     *services.HubService
	posts          *services.PostService
	gauge          ViewerGauge
	allowedOrigins []string
	upgrader       websocket.Upgrader
	log            *zap.SugaredLogger
}

func NewWebSocketHandler(hubService *services.HubService, posts *services.PostService, gauge ViewerGauge, allowedOrigins []string, log *zap.SugaredLogger) *WebSocketHandler {
	wh := &WebSocketHandler{
		hubService:     hubService,
		posts:          posts,
		gauge:          gauge,
		allowedOrigins: allowedOrigins,
		log:            log.Named("ws"),
	}
	wh.upgrader = websocket.Upgrader{CheckOrigin: wh.checkOrigin}
	return wh
}

// checkOrigin accepts same-host pages and the configured CORS origins.
func (wh *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && u.Host == r.Host {
		return true
	}
	for _, allowed := range wh.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// HandleLive streams comment events for one visible post. Anonymous
// viewers are welcome; the stream is read-only.
func (wh *WebSocketHandler) HandleLive(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	post, err := wh.posts.GetVisible(c.Request.Context(), uint(postID))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		wh.log.Errorw("Failed to load post for live stream", "post_id", postID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	conn, err := wh.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		wh.log.Warnw("Failed to upgrade connection", "post_id", post.ID, "error", err)
		return
	}

	client := models.NewClient(wh.hubService.GetHub(), conn, post.ID)
	wh.log.Debugw("Live viewer connected", "client_id", client.ID, "post_id", post.ID)
	if wh.gauge != nil {
		wh.gauge.ViewerConnected()
	}

	client.Hub.Register <- client
	wh.greet(client)

	go wh.writePump(client)
	go wh.readPump(client)
}

func (wh *WebSocketHandler) greet(client *models.Client) {
	msg := models.WSMessage{
		Type: models.EventClientConnected,
		Data: map[string]interface{}{"client_id": client.ID, "post_id": client.PostID},
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		wh.log.Errorw("Error marshaling greeting", "client_id", client.ID, "error", err)
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

// readPump only drains control frames; viewers never send anything we act
// on.
func (wh *WebSocketHandler) readPump(client *models.Client) {
	defer func() {
		client.Hub.Unregister <- client
		client.Conn.Close()
		if wh.gauge != nil {
			wh.gauge.ViewerDisconnected()
		}
		wh.log.Debugw("Live viewer disconnected", "client_id", client.ID, "post_id", client.PostID)
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				wh.log.Infow("Unexpected close", "client_id", client.ID, "error", err)
			}
			return
		}
	}
}

func (wh *WebSocketHandler) writePump(client *models.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				wh.log.Debugw("Write failed", "client_id", client.ID, "error", err)
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
