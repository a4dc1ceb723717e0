package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type changeEvent struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// Notifier adapts the hub to the usecase layer's notification port.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyUser(userID uuid.UUID, event string) {
	if n == nil || n.hub == nil || event == "" {
		return
	}

	b, err := json.Marshal(changeEvent{
		Type:      event,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	n.hub.SendToUser(userID, b)
}
