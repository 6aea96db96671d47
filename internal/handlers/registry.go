package handlers

import (
	"handwork_backend/internal/services"
	"handwork_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	CreatorHandler *CreatorHandler
	OrderHandler   *OrderHandler
	PaymentHandler *PaymentHandler
	ReviewHandler  *ReviewHandler
	ChatHandler    *ChatHandler
	SupportHandler *SupportHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:    NewAuthHandler(base, container.AuthService),
		CreatorHandler: NewCreatorHandler(base, container.CreatorService, container.ReviewService),
		OrderHandler:   NewOrderHandler(base, container.OrderService),
		PaymentHandler: NewPaymentHandler(base, container.PaymentService),
		ReviewHandler:  NewReviewHandler(base, container.ReviewService),
		ChatHandler:    NewChatHandler(base, container.ChatService),
		SupportHandler: NewSupportHandler(base, container.Notifications),
	}
}
