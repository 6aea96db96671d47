package services

import (
	"context"
	"errors"
	"math"
	"time"

	"handwork_backend/internal/logger"
	"handwork_backend/internal/models"
	"handwork_backend/internal/payments"
	"handwork_backend/internal/repositories"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService interface {
	// InitiatePayment - заказчик оплачивает принятый заказ. Сумма обязана
	// в точности совпасть с бюджетом заказа.
	InitiatePayment(db *gorm.DB, userID string, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error)

	// HandleCallback обрабатывает подтверждение оплаты от шлюза: проверяет
	// подпись, помечает транзакцию оплаченной и переводит заказ в работу.
	HandleCallback(ctx context.Context, db *gorm.DB, req *dto.PaymentCallbackRequest) error
}

type paymentService struct {
	paymentRepo   repositories.PaymentRepository
	orderRepo     repositories.OrderRepository
	userRepo      repositories.UserRepository
	gateway       payments.Gateway
	currency      string
	notifications *NotificationService
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	gateway payments.Gateway,
	currency string,
	notifications *NotificationService,
) PaymentService {
	return &paymentService{
		paymentRepo:   paymentRepo,
		orderRepo:     orderRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		currency:      currency,
		notifications: notifications,
	}
}

func (s *paymentService) InitiatePayment(db *gorm.DB, userID string, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	order, err := s.orderRepo.FindByID(db, req.OrderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Платит только заказчик этого заказа.
	if order.CustomerID != userID {
		if !order.Participant(userID) {
			return nil, apperrors.ErrNotOrderParticipant
		}
		return nil, apperrors.ErrInsufficientPermissions
	}

	if order.Status != models.OrderStatusAccepted {
		return nil, apperrors.ErrPaymentInvalidState
	}

	if !amountsEqual(req.Amount, order.Budget) {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	payer, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := &models.PaymentTransaction{
		OrderID:   order.ID,
		PayerID:   userID,
		Amount:    req.Amount,
		Currency:  s.currency,
		Status:    models.PaymentStatusPending,
		InvoiceID: uuid.New().String(),
	}
	if err := s.paymentRepo.Create(db, tx); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.gateway.GeneratePaymentURL(tx.InvoiceID, tx.Amount, order.Title, payer.Email)
	if err != nil {
		logger.Error("Шлюз не выдал ссылку на оплату", "invoice_id", tx.InvoiceID, "error", err)
		return nil, apperrors.ErrPaymentInitiationFailed(err)
	}

	return &dto.InitiatePaymentResponse{
		InvoiceID:  tx.InvoiceID,
		PaymentURL: url,
	}, nil
}

func (s *paymentService) HandleCallback(ctx context.Context, db *gorm.DB, req *dto.PaymentCallbackRequest) error {
	if !s.gateway.VerifyResultSignature(req.OutSum, req.InvID, req.SignatureValue) {
		return apperrors.ErrPaymentSignatureMismatch
	}

	tx, err := s.paymentRepo.FindByInvoiceID(db, req.InvID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !amountsEqual(req.OutSum, tx.Amount) {
		return apperrors.ErrInvalidPaymentAmount
	}

	if err := s.paymentRepo.MarkPaid(db, tx.ID, time.Now()); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			// CAS не применился: транзакция уже не pending. Перечитываем,
			// чтобы дубль callback'а (в том числе конкурентный) получил
			// идемпотентный успех, а не ошибку.
			current, readErr := s.paymentRepo.FindByInvoiceID(db, req.InvID)
			if readErr != nil {
				return apperrors.InternalError(readErr)
			}
			if current.Status == models.PaymentStatusPaid {
				return nil
			}
			return apperrors.ErrPaymentInvalidState
		}
		return apperrors.InternalError(err)
	}

	// Подтверждённая оплата автоматически запускает работу по заказу.
	if err := s.orderRepo.UpdateStatusFrom(db, tx.OrderID,
		models.OrderStatusAccepted, models.OrderStatusInProgress); err != nil {
		if errors.Is(err, repositories.ErrStatusConflict) {
			// Заказ уже двинулся дальше. Оплата зафиксирована, этого достаточно.
			logger.CtxWarn(ctx, "Оплата подтверждена, но заказ уже не в accepted",
				"order_id", tx.OrderID, "invoice_id", tx.InvoiceID)
			return nil
		}
		return apperrors.InternalError(err)
	}

	if s.notifications != nil {
		if order, err := s.orderRepo.FindByIDWithDetails(db, tx.OrderID); err == nil && order.Creator != nil {
			s.notifications.NotifyPaymentReceived(ctx, order.Creator.Email, order.Title)
		}
	}
	return nil
}

// amountsEqual сравнивает денежные суммы с копеечным допуском.
func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
