package models

import "time"

// MessageStatus tracks the one-directional delivery lifecycle.
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

// MessagePriority flags the urgency shown in the inbox.
type MessagePriority string

const (
	MessagePriorityLow    MessagePriority = "low"
	MessagePriorityNormal MessagePriority = "normal"
	MessagePriorityHigh   MessagePriority = "high"
	MessagePriorityUrgent MessagePriority = "urgent"
)

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p MessagePriority) bool {
	switch p {
	case MessagePriorityLow, MessagePriorityNormal, MessagePriorityHigh, MessagePriorityUrgent:
		return true
	}
	return false
}

// Message is an internal portal message between two accounts. Status only
// advances sent -> delivered -> read; there is no unread reset.
type Message struct {
	ID           string          `json:"id"`
	SenderID     string          `json:"sender_id"`
	SenderName   string          `json:"sender_name"`
	ReceiverID   string          `json:"receiver_id"`
	ReceiverName string          `json:"receiver_name"`
	Subject      string          `json:"subject"`
	Content      string          `json:"content"`
	Priority     MessagePriority `json:"priority"`
	Status       MessageStatus   `json:"status"`
	SentAt       time.Time       `json:"sent_at"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	ReadAt       *time.Time      `json:"read_at,omitempty"`
}
