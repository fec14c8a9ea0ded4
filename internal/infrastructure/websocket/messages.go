package websocket

import (
	"encoding/json"
	"time"

	"github.com/Bayu5aputra/personal-profile/internal/domain/entity"
	"github.com/Bayu5aputra/personal-profile/pkg/logger"
)

// WebSocket Message Types
const (
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
	MessageTypeSubscribe     = "subscribe"
	MessageTypeSubscribed    = "subscribed"
	MessageTypeRatingUpdated = "rating_updated"
	MessageTypeError         = "error"
)

type WSMessage struct {
	Type      string          `json:"type"`
	ProductID int             `json:"productId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type SubscribeData struct {
	ProductID int `json:"productId"`
}

type RatingUpdateData struct {
	Average      float64                   `json:"average"`
	Count        int                       `json:"count"`
	Distribution entity.RatingDistribution `json:"distribution"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// NotifyRatingUpdated pushes fresh aggregates to every client watching productID.
func (m *Manager) NotifyRatingUpdated(productID int, summary entity.RatingSummary, distribution entity.RatingDistribution) {
	payload, err := newMessage(MessageTypeRatingUpdated, productID, RatingUpdateData{
		Average:      summary.Average,
		Count:        summary.Count,
		Distribution: distribution,
	})
	if err != nil {
		logger.Error("WebSocket: failed to encode rating update: %v", err)
		return
	}

	m.publish(productID, payload)
}

// HandleClientMessage processes incoming WebSocket messages
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.sendError(client, "Invalid message format")
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.reply(client, MessageTypePong, client.productID(m), nil)

	case MessageTypeSubscribe:
		var data SubscribeData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.ProductID <= 0 {
			m.sendError(client, "Invalid product ID")
			return
		}
		m.Subscribe(client, data.ProductID)
		m.reply(client, MessageTypeSubscribed, data.ProductID, nil)

	default:
		m.sendError(client, "Unknown message type: "+msg.Type)
	}
}

func (m *Manager) sendError(client *Client, message string) {
	m.reply(client, MessageTypeError, 0, ErrorData{Message: message})
}

func (m *Manager) reply(client *Client, msgType string, productID int, data interface{}) {
	payload, err := newMessage(msgType, productID, data)
	if err != nil {
		logger.Error("WebSocket: failed to encode %s: %v", msgType, err)
		return
	}
	m.sendTo(client, payload)
}

func newMessage(msgType string, productID int, data interface{}) ([]byte, error) {
	msg := WSMessage{
		Type:      msgType,
		ProductID: productID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return json.Marshal(msg)
}
