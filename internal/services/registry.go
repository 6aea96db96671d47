package services

import (
	"handwork_backend/internal/email"
	"handwork_backend/internal/payments"
	"handwork_backend/internal/repositories"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService    AuthService
	CreatorService CreatorService
	OrderService   OrderService
	PaymentService PaymentService
	ReviewService  ReviewService
	ChatService    ChatService
	Notifications  *NotificationService
}

// NewServiceContainer собирает сервисы поверх stateless-репозиториев.
func NewServiceContainer(gateway payments.Gateway, emailProvider email.Provider, currency, supportInbox string) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	orderRepo := repositories.NewOrderRepository()
	messageRepo := repositories.NewMessageRepository()
	reviewRepo := repositories.NewReviewRepository()
	paymentRepo := repositories.NewPaymentRepository()

	notifications := NewNotificationService(emailProvider, supportInbox)

	return &ServiceContainer{
		AuthService:    NewAuthService(userRepo),
		CreatorService: NewCreatorService(userRepo, profileRepo),
		OrderService:   NewOrderService(orderRepo, userRepo, paymentRepo, notifications),
		PaymentService: NewPaymentService(paymentRepo, orderRepo, userRepo, gateway, currency, notifications),
		ReviewService:  NewReviewService(reviewRepo, orderRepo),
		ChatService:    NewChatService(messageRepo, orderRepo),
		Notifications:  notifications,
	}
}
