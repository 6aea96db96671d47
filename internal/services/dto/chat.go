package dto

import "time"

// SendMessageRequest - новое сообщение в переписке заказа.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// MessageResponse - запись журнала переписки.
type MessageResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	Sender *PartyInfo `json:"sender,omitempty"`
}

// MessageListResponse - журнал сообщений заказа в хронологическом порядке.
type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Total    int64              `json:"total"`
}
