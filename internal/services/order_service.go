package services

import (
	"context"
	"errors"
	"fmt"

	"handwork_backend/internal/models"
	"handwork_backend/internal/repositories"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type OrderService interface {
	// CreateOrder - заказчик открывает заказ у активного мастера.
	CreateOrder(ctx context.Context, db *gorm.DB, customerID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)

	GetOrder(db *gorm.DB, userID, orderID string) (*dto.OrderResponse, error)
	ListOrders(db *gorm.DB, userID string) (*dto.OrderListResponse, error)

	// TransitionOrder выполняет переход заказа по таблице жизненного цикла.
	// Повтор уже выполненного перехода (target == текущий статус) считается
	// успешным no-op: повторные клики и ретраи не превращаются в ошибку.
	TransitionOrder(ctx context.Context, db *gorm.DB, userID, orderID string, target string) (*dto.OrderResponse, error)
}

type orderService struct {
	orderRepo     repositories.OrderRepository
	userRepo      repositories.UserRepository
	paymentRepo   repositories.PaymentRepository
	notifications *NotificationService
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	notifications *NotificationService,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		userRepo:      userRepo,
		paymentRepo:   paymentRepo,
		notifications: notifications,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, db *gorm.DB, customerID string, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	customer, err := s.userRepo.FindByID(db, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if customer.Role != models.UserRoleCustomer {
		return nil, apperrors.ErrInsufficientPermissions
	}

	creator, err := s.userRepo.FindByID(db, req.CreatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	// Заказы принимает только прошедший модерацию мастер.
	if creator.Role != models.UserRoleCreator || creator.Status != models.UserStatusActive {
		return nil, apperrors.ErrCreatorNotActive
	}

	order := &models.Order{
		CustomerID:      customerID,
		CreatorID:       req.CreatorID,
		Title:           req.Title,
		Description:     req.Description,
		Budget:          req.Budget,
		Deadline:        req.Deadline,
		ReferenceImages: stringsToJSON(req.ReferenceImages),
		Status:          models.OrderStatusRequested,
	}

	if err := s.orderRepo.Create(db, order); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.notifications != nil {
		s.notifications.NotifyOrderCreated(ctx, creator.Email, order.Title)
	}

	order.Customer = customer
	order.Creator = creator
	return s.buildOrderResponse(order), nil
}

func (s *orderService) GetOrder(db *gorm.DB, userID, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByIDWithDetails(db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Карточку заказа видят стороны заказа и администратор.
	if !order.Participant(userID) {
		viewer, err := s.userRepo.FindByID(db, userID)
		if err != nil || viewer.Role != models.UserRoleAdmin {
			return nil, apperrors.ErrNotOrderParticipant
		}
	}

	return s.buildOrderResponse(order), nil
}

func (s *orderService) ListOrders(db *gorm.DB, userID string) (*dto.OrderListResponse, error) {
	orders, err := s.orderRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, s.buildOrderResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Orders: responses,
		Total:  int64(len(responses)),
	}, nil
}

func (s *orderService) TransitionOrder(ctx context.Context, db *gorm.DB, userID, orderID string, target string) (*dto.OrderResponse, error) {
	to, ok := models.ParseOrderStatus(target)
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown order status: %s", target))
	}

	order, err := s.findParticipantOrder(db, userID, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status

	// Повтор уже совершённого перехода.
	if from == to {
		return s.buildOrderResponse(order), nil
	}

	if from.Terminal() {
		return nil, apperrors.ErrInvalidTransition(
			fmt.Sprintf("order is %s, no further changes are possible", from))
	}
	if !from.CanTransitionTo(to) {
		return nil, apperrors.ErrInvalidTransition(
			fmt.Sprintf("cannot move order from %s to %s", from, to))
	}

	actor, _ := models.TransitionActor(from, to)
	side, _ := order.SideOf(userID)
	if side != actor {
		return nil, apperrors.ErrWrongTransitionActor
	}

	// Гейт оплаты: в работу заказ уходит только после подтверждённого платежа.
	if from == models.OrderStatusAccepted && to == models.OrderStatusInProgress {
		paid, err := s.paymentRepo.HasPaidForOrder(db, orderID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !paid {
			return nil, apperrors.ErrPaymentRequired
		}
	}

	if err := s.orderRepo.UpdateStatusFrom(db, orderID, from, to); err != nil {
		switch {
		case errors.Is(err, repositories.ErrOrderNotFound):
			return nil, apperrors.ErrNotFound(err)
		case errors.Is(err, repositories.ErrStatusConflict):
			// Конкурирующий переход успел раньше. Если он привёл заказ туда же,
			// куда хотели мы, исход совпадает и это успех.
			current, readErr := s.orderRepo.FindByIDWithDetails(db, orderID)
			if readErr != nil {
				return nil, apperrors.InternalError(readErr)
			}
			if current.Status == to {
				return s.buildOrderResponse(current), nil
			}
			return nil, apperrors.ErrInvalidTransition(
				fmt.Sprintf("order status changed concurrently, now %s", current.Status))
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	order.Status = to
	s.notifyCounterparty(ctx, order, userID)
	return s.buildOrderResponse(order), nil
}

// findParticipantOrder загружает заказ и проверяет членство пользователя.
func (s *orderService) findParticipantOrder(db *gorm.DB, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDWithDetails(db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !order.Participant(userID) {
		return nil, apperrors.ErrNotOrderParticipant
	}
	return order, nil
}

// notifyCounterparty шлёт письмо второй стороне заказа о смене статуса.
func (s *orderService) notifyCounterparty(ctx context.Context, order *models.Order, actorID string) {
	if s.notifications == nil {
		return
	}

	var counterparty *models.User
	if actorID == order.CustomerID {
		counterparty = order.Creator
	} else {
		counterparty = order.Customer
	}
	if counterparty == nil {
		return
	}

	s.notifications.NotifyOrderStatusChanged(ctx, counterparty.Email, order.Title, order.Status)
}

func (s *orderService) buildOrderResponse(order *models.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              order.ID,
		CustomerID:      order.CustomerID,
		CreatorID:       order.CreatorID,
		Title:           order.Title,
		Description:     order.Description,
		Budget:          order.Budget,
		Deadline:        order.Deadline,
		ReferenceImages: jsonToStrings(order.ReferenceImages),
		Status:          order.Status,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Customer:        buildPartyInfo(order.Customer),
		Creator:         buildPartyInfo(order.Creator),
	}

	if order.Review != nil && order.Review.ID != "" {
		resp.Review = &dto.ReviewResponse{
			ID:        order.Review.ID,
			OrderID:   order.Review.OrderID,
			AuthorID:  order.Review.AuthorID,
			TargetID:  order.Review.TargetID,
			Rating:    order.Review.Rating,
			Comment:   order.Review.Comment,
			CreatedAt: order.Review.CreatedAt,
		}
	}

	return resp
}
