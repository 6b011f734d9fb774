package dto

// SendMessageRequest creates a new message addressed by receiver ID.
// Priority defaults to normal when omitted.
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Content    string `json:"content" validate:"required"`
	Priority   string `json:"priority"`
}

// MailboxCounts summarises a user's inbox state.
type MailboxCounts struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}
