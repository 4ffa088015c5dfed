package models

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub tracks live viewers of post pages. Its maps are owned by the
// goroutine running services.HubService.Run.
type Hub struct {
	Clients     map[*Client]bool
	Broadcast   chan PostEvent
	Register    chan *Client
	Unregister  chan *Client
	PostClients map[uint][]*Client
}

type Client struct {
	ID     string
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	PostID uint
}

// PostEvent is a message addressed to every viewer of one post.
type PostEvent struct {
	PostID  uint
	Message WSMessage
}

type WSMessage struct {
	Type     string      `json:"type"`
	Data     interface{} `json:"data"`
	ClientID string      `json:"client_id,omitempty"`
}

const (
	EventClientConnected = "client_connected"
	EventCommentCreated  = "comment_created"
	EventCommentUpdated  = "comment_updated"
	EventCommentDeleted  = "comment_deleted"
)

func NewHub() *Hub {
	return &Hub{
		Clients:     make(map[*Client]bool),
		Broadcast:   make(chan PostEvent, 64),
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		PostClients: make(map[uint][]*Client),
	}
}

func NewClient(hub *Hub, conn *websocket.Conn, postID uint) *Client {
	return &Client{
		ID:     uuid.New().String(),
		Hub:    hub,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		PostID: postID,
	}
}
