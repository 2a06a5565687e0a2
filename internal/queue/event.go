// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names. One durable queue per event kind.
const (
	RentalStatusQueue   = "rental.status"
	MessageRepliedQueue = "message.replied"
)

// RentalStatusChangedEvent is published after every successful rental
// transition. It carries enough for downstream consumers to log or
// notify without querying the primary database.
type RentalStatusChangedEvent struct {
	RentalID  uint64 `json:"rental_id"`
	UserID    uint64 `json:"user_id"`
	VideoID   uint64 `json:"video_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedAt string `json:"changed_at"`
}

// MessageRepliedEvent is published when staff reply to a support message.
type MessageRepliedEvent struct {
	MessageID uint64 `json:"message_id"`
	UserID    uint64 `json:"user_id"`
	RepliedAt string `json:"replied_at"`
}
