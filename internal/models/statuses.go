package models

type UserStatus string
type UserRole string
type OrderStatus string
type PaymentStatus string

const (
	// Статусы доверия мастера: pending_verification -> pending_approval -> active
	UserStatusPendingVerification UserStatus = "pending_verification"
	UserStatusPendingApproval     UserStatus = "pending_approval"
	UserStatusActive              UserStatus = "active"

	UserRoleCustomer UserRole = "customer"
	UserRoleCreator  UserRole = "creator"
	UserRoleAdmin    UserRole = "admin"

	OrderStatusRequested  OrderStatus = "requested"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ParseUserRole валидирует роль на границе. Неизвестные значения отклоняются.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case UserRoleCustomer, UserRoleCreator, UserRoleAdmin:
		return UserRole(s), true
	}
	return "", false
}

func ParseUserStatus(s string) (UserStatus, bool) {
	switch UserStatus(s) {
	case UserStatusPendingVerification, UserStatusPendingApproval, UserStatusActive:
		return UserStatus(s), true
	}
	return "", false
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusRequested, OrderStatusAccepted, OrderStatusInProgress,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// orderEdge описывает разрешённый переход заказа и роль участника заказа,
// которой он доступен (customer/creator по отношению к самому заказу).
type orderEdge struct {
	To    OrderStatus
	Actor UserRole
}

// Таблица переходов жизненного цикла заказа. cancelled и completed терминальны.
var orderTransitions = map[OrderStatus][]orderEdge{
	OrderStatusRequested: {
		{To: OrderStatusAccepted, Actor: UserRoleCreator},
		{To: OrderStatusCancelled, Actor: UserRoleCreator},
	},
	OrderStatusAccepted: {
		{To: OrderStatusInProgress, Actor: UserRoleCreator},
	},
	OrderStatusInProgress: {
		{To: OrderStatusReady, Actor: UserRoleCreator},
	},
	OrderStatusReady: {
		{To: OrderStatusDelivered, Actor: UserRoleCreator},
	},
	OrderStatusDelivered: {
		{To: OrderStatusCompleted, Actor: UserRoleCustomer},
	},
}

// CanTransitionTo сообщает, существует ли ребро from->to в таблице переходов.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, e := range orderTransitions[s] {
		if e.To == target {
			return true
		}
	}
	return false
}

// TransitionActor возвращает сторону заказа, которой разрешён переход from->to.
func TransitionActor(from, to OrderStatus) (UserRole, bool) {
	for _, e := range orderTransitions[from] {
		if e.To == to {
			return e.Actor, true
		}
	}
	return "", false
}

// Terminal сообщает, что из статуса нет исходящих переходов.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}
