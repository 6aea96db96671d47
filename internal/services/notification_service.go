package services

import (
	"context"
	"fmt"

	"handwork_backend/internal/email"
	"handwork_backend/internal/logger"
	"handwork_backend/internal/models"
	"handwork_backend/internal/services/dto"
)

// NotificationService рассылает письма о событиях заказа. Все отправки
// best-effort: сбой почты логируется и никогда не валит основную операцию.
type NotificationService struct {
	provider     email.Provider
	supportInbox string
}

func NewNotificationService(provider email.Provider, supportInbox string) *NotificationService {
	return &NotificationService{
		provider:     provider,
		supportInbox: supportInbox,
	}
}

// NotifyOrderCreated - мастеру о новом заказе.
func (s *NotificationService) NotifyOrderCreated(ctx context.Context, to, orderTitle string) {
	s.sendAsync(ctx, to,
		"Новый заказ",
		fmt.Sprintf("Вам поступил новый заказ: «%s». Примите или отклоните его в личном кабинете.", orderTitle))
}

// NotifyOrderStatusChanged - второй стороне заказа о смене статуса.
func (s *NotificationService) NotifyOrderStatusChanged(ctx context.Context, to, orderTitle string, status models.OrderStatus) {
	s.sendAsync(ctx, to,
		"Статус заказа изменён",
		fmt.Sprintf("Заказ «%s» перешёл в статус: %s.", orderTitle, status))
}

// NotifyPaymentReceived - мастеру о подтверждённой оплате.
func (s *NotificationService) NotifyPaymentReceived(ctx context.Context, to, orderTitle string) {
	s.sendAsync(ctx, to,
		"Заказ оплачен",
		fmt.Sprintf("Заказ «%s» оплачен заказчиком. Можно приступать к работе.", orderTitle))
}

// HandleSupportRequest фиксирует обращение в поддержку: пишет в лог и
// пересылает на ящик поддержки, если он настроен.
func (s *NotificationService) HandleSupportRequest(ctx context.Context, req *dto.SupportRequest) {
	logger.CtxInfo(ctx, "Обращение в поддержку",
		"email", req.Email,
		"subject", req.Subject,
	)

	if s.supportInbox == "" {
		return
	}
	s.sendAsync(ctx, s.supportInbox,
		fmt.Sprintf("[support] %s", req.Subject),
		fmt.Sprintf("От: %s\n\n%s", req.Email, req.Message))
}

func (s *NotificationService) sendAsync(ctx context.Context, to, subject, body string) {
	if s.provider == nil || to == "" {
		return
	}

	go func() {
		msg := &email.Email{
			To:      []string{to},
			Subject: subject,
			Body:    body,
		}
		if err := s.provider.Send(msg); err != nil {
			logger.CtxWarn(ctx, "Не удалось отправить уведомление",
				"to", to,
				"subject", subject,
				"error", err,
			)
		}
	}()
}
