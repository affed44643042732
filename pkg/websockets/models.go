package websockets

import "github.com/chris/polyfunds-ledger/pkg/models"

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeLedgerEvent carries one committed ledger event.
	MessageTypeLedgerEvent MessageType = "ledgerEvent"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// LedgerEventPayload is the payload for a ledgerEvent message.
type LedgerEventPayload struct {
	Seq        uint64            `json:"seq"`
	Type       string            `json:"event_type"`
	BusinessID *uint64           `json:"business_id,omitempty"`
	Account    string            `json:"account,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
	Timestamp  string            `json:"timestamp"`
}

// NewLedgerEventMessage wraps a ledger event for subscribers.
func NewLedgerEventMessage(ev models.Event) Message {
	return Message{
		Type: MessageTypeLedgerEvent,
		Payload: LedgerEventPayload{
			Seq:        ev.Seq,
			Type:       string(ev.Type),
			BusinessID: ev.BusinessID,
			Account:    ev.Account,
			Data:       ev.Data,
			Timestamp:  ev.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		},
	}
}
