package services

import (
	"encoding/json"

	"blogicum/models"

	"go.uber.org/zap"
)

type HubService struct {
	hub *models.Hub
	log *zap.SugaredLogger
}

func NewHubService(log *zap.SugaredLogger) *HubService {
	service := &HubService{hub: models.NewHub(), log: log.Named("hub")}

	go service.Run()

	return service
}

func (h *HubService) GetHub() *models.Hub {
	return h.hub
}

func (h *HubService) Run() {
	for {
		select {
		case client := <-h.hub.Register:
			h.registerClient(client)

		case client := <-h.hub.Unregister:
			h.unregisterClient(client)

		case event := <-h.hub.Broadcast:
			h.broadcastToPost(event)
		}
	}
}

func (h *HubService) registerClient(client *models.Client) {
	h.hub.Clients[client] = true
	h.hub.PostClients[client.PostID] = append(h.hub.PostClients[client.PostID], client)
	h.log.Debugw("Client registered", "client_id", client.ID, "post_id", client.PostID)
}

func (h *HubService) unregisterClient(client *models.Client) {
	if _, ok := h.hub.Clients[client]; !ok {
		return
	}
	delete(h.hub.Clients, client)
	close(client.Send)

	clients := h.hub.PostClients[client.PostID]
	for i, c := range clients {
		if c == client {
			h.hub.PostClients[client.PostID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.hub.PostClients[client.PostID]) == 0 {
		delete(h.hub.PostClients, client.PostID)
	}
	h.log.Debugw("Client unregistered", "client_id", client.ID, "post_id", client.PostID)
}

func (h *HubService) broadcastToPost(event models.PostEvent) {
	messageBytes, err := json.Marshal(event.Message)
	if err != nil {
		h.log.Errorw("Error marshaling WebSocket message", "error", err)
		return
	}

	clients := append([]*models.Client(nil), h.hub.PostClients[event.PostID]...)
	for _, client := range clients {
		if client.ID == event.Message.ClientID {
			continue
		}
		select {
		case client.Send <- messageBytes:
		default:
			h.unregisterClient(client)
		}
	}
}

// BroadcastToPost queues an event for every live viewer of postID. It never
// blocks the caller; events are dropped when the hub is saturated.
func (h *HubService) BroadcastToPost(postID uint, messageType string, data interface{}) {
	event := models.PostEvent{
		PostID:  postID,
		Message: models.WSMessage{Type: messageType, Data: data},
	}
	select {
	case h.hub.Broadcast <- event:
	default:
		h.log.Warnw("Hub saturated, dropping event", "post_id", postID, "type", messageType)
	}
}
