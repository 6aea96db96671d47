package services

import (
	"context"
	"sync"
	"testing"

	"handwork_backend/internal/models"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	users    *fakeUserRepo
	orders   *fakeOrderRepo
	payments *fakePaymentRepo
	service  OrderService
	customer *models.User
	creator  *models.User
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	users := newFakeUserRepo()
	orders := newFakeOrderRepo()
	payments := newFakePaymentRepo()

	customer := users.add(&models.User{
		Email:  "customer@test.local",
		Role:   models.UserRoleCustomer,
		Status: models.UserStatusActive,
	})
	creator := users.add(&models.User{
		Email:  "creator@test.local",
		Role:   models.UserRoleCreator,
		Status: models.UserStatusActive,
	})

	return &orderFixture{
		users:    users,
		orders:   orders,
		payments: payments,
		service:  NewOrderService(orders, users, payments, nil),
		customer: customer,
		creator:  creator,
	}
}

func (f *orderFixture) newOrder(status models.OrderStatus) *models.Order {
	return f.orders.add(&models.Order{
		CustomerID: f.customer.ID,
		CreatorID:  f.creator.ID,
		Title:      "Дубовый стол",
		Budget:     500,
		Status:     status,
	})
}

func assertAppCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestOrderService_CreateOrder(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	ctx := context.Background()

	resp, err := f.service.CreateOrder(ctx, nil, f.customer.ID, &dto.CreateOrderRequest{
		CreatorID:   f.creator.ID,
		Title:       "Кожаный ремень",
		Description: "Ручная прошивка, гравировка",
		Budget:      120,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRequested, resp.Status)
	assert.Equal(t, f.customer.ID, resp.CustomerID)
	assert.Equal(t, f.creator.ID, resp.CreatorID)
}

func TestOrderService_CreateOrder_CreatorNotActive(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)

	pending := f.users.add(&models.User{
		Email:  "pending@test.local",
		Role:   models.UserRoleCreator,
		Status: models.UserStatusPendingApproval,
	})

	_, err := f.service.CreateOrder(context.Background(), nil, f.customer.ID, &dto.CreateOrderRequest{
		CreatorID:   pending.ID,
		Title:       "Кожаный ремень",
		Description: "Ручная прошивка, гравировка",
		Budget:      120,
	})
	assert.ErrorIs(t, err, apperrors.ErrCreatorNotActive)
}

// Полный жизненный цикл: requested -> accepted -> in_progress -> ready ->
// delivered -> completed, каждый шаг от правильной стороны.
func TestOrderService_FullLifecycle(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.newOrder(models.OrderStatusRequested)

	steps := []struct {
		actor  string
		target models.OrderStatus
	}{
		{f.creator.ID, models.OrderStatusAccepted},
		{f.creator.ID, models.OrderStatusInProgress},
		{f.creator.ID, models.OrderStatusReady},
		{f.creator.ID, models.OrderStatusDelivered},
		{f.customer.ID, models.OrderStatusCompleted},
	}

	f.payments.markOrderPaid(order.ID)

	for _, step := range steps {
		resp, err := f.service.TransitionOrder(ctx, nil, step.actor, order.ID, string(step.target))
		require.NoError(t, err, "transition to %s", step.target)
		assert.Equal(t, step.target, resp.Status)
	}
}

func TestOrderService_Transition_SkipStep(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	order := f.newOrder(models.OrderStatusRequested)

	// requested -> ready мимо accepted/in_progress
	_, err := f.service.TransitionOrder(context.Background(), nil, f.creator.ID, order.ID, string(models.OrderStatusReady))
	assertAppCode(t, err, apperrors.CodeInvalidTransition)
}

func TestOrderService_Transition_WrongActor(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	ctx := context.Background()

	// Отменить заказ может только мастер.
	order := f.newOrder(models.OrderStatusRequested)
	_, err := f.service.TransitionOrder(ctx, nil, f.customer.ID, order.ID, string(models.OrderStatusCancelled))
	assert.ErrorIs(t, err, apperrors.ErrWrongTransitionActor)

	// Подтвердить получение может только заказчик.
	delivered := f.newOrder(models.OrderStatusDelivered)
	_, err = f.service.TransitionOrder(ctx, nil, f.creator.ID, delivered.ID, string(models.OrderStatusCompleted))
	assert.ErrorIs(t, err, apperrors.ErrWrongTransitionActor)
}

func TestOrderService_Transition_TerminalStates(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	ctx := context.Background()

	cancelled := f.newOrder(models.OrderStatusCancelled)
	_, err := f.service.TransitionOrder(ctx, nil, f.creator.ID, cancelled.ID, string(models.OrderStatusAccepted))
	assertAppCode(t, err, apperrors.CodeInvalidTransition)

	completed := f.newOrder(models.OrderStatusCompleted)
	_, err = f.service.TransitionOrder(ctx, nil, f.creator.ID, completed.ID, string(models.OrderStatusReady))
	assertAppCode(t, err, apperrors.CodeInvalidTransition)
}

// Повторный запрос уже выполненного перехода - успешный no-op.
func TestOrderService_Transition_RepeatIsNoop(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	order := f.newOrder(models.OrderStatusAccepted)

	resp, err := f.service.TransitionOrder(context.Background(), nil, f.creator.ID, order.ID, string(models.OrderStatusAccepted))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, resp.Status)
}

func TestOrderService_Transition_PaymentGate(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.newOrder(models.OrderStatusAccepted)

	// Без подтвержденной оплаты заказ не уходит в работу.
	_, err := f.service.TransitionOrder(ctx, nil, f.creator.ID, order.ID, string(models.OrderStatusInProgress))
	assert.ErrorIs(t, err, apperrors.ErrPaymentRequired)

	f.payments.markOrderPaid(order.ID)

	resp, err := f.service.TransitionOrder(ctx, nil, f.creator.ID, order.ID, string(models.OrderStatusInProgress))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInProgress, resp.Status)
}

// Конкурентные переходы в один и тот же статус сходятся к успеху: кто-то
// выигрывает CAS, остальные видят уже достигнутую цель.
func TestOrderService_Transition_ConcurrentSameTarget(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	ctx := context.Background()
	order := f.newOrder(models.OrderStatusAccepted)
	f.payments.markOrderPaid(order.ID)

	const workers = 8
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.TransitionOrder(ctx, nil, f.creator.ID, order.ID, string(models.OrderStatusInProgress))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "worker %d", i)
	}
	current, _ := f.orders.FindByID(nil, order.ID)
	assert.Equal(t, models.OrderStatusInProgress, current.Status)
}

// Принятие против отмены из requested: выигрывает ровно один переход,
// проигравший наблюдает новый статус и получает отказ.
func TestOrderService_Transition_ConcurrentConflictingTargets(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	ctx := context.Background()

	targets := []models.OrderStatus{models.OrderStatusAccepted, models.OrderStatusCancelled}

	for trial := 0; trial < 50; trial++ {
		order := f.newOrder(models.OrderStatusRequested)

		results := make([]error, len(targets))
		var wg sync.WaitGroup
		for i, target := range targets {
			wg.Add(1)
			go func(i int, target models.OrderStatus) {
				defer wg.Done()
				_, results[i] = f.service.TransitionOrder(ctx, nil, f.creator.ID, order.ID, string(target))
			}(i, target)
		}
		wg.Wait()

		var wins int
		for _, err := range results {
			if err == nil {
				wins++
				continue
			}
			assertAppCode(t, err, apperrors.CodeInvalidTransition)
		}
		require.Equal(t, 1, wins, "trial %d", trial)

		current, _ := f.orders.FindByID(nil, order.ID)
		assert.Contains(t, targets, current.Status, "trial %d", trial)
	}
}

func TestOrderService_Transition_NonParticipant(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	order := f.newOrder(models.OrderStatusRequested)

	stranger := f.users.add(&models.User{
		Email:  "stranger@test.local",
		Role:   models.UserRoleCustomer,
		Status: models.UserStatusActive,
	})

	_, err := f.service.TransitionOrder(context.Background(), nil, stranger.ID, order.ID, string(models.OrderStatusAccepted))
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParticipant)

	_, err = f.service.GetOrder(nil, stranger.ID, order.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParticipant)
}

// Администратор видит карточку любого заказа, но в переходах не участвует.
func TestOrderService_GetOrder_AdminCanRead(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	order := f.newOrder(models.OrderStatusRequested)

	admin := f.users.add(&models.User{
		Email:  "admin@test.local",
		Role:   models.UserRoleAdmin,
		Status: models.UserStatusActive,
	})

	resp, err := f.service.GetOrder(nil, admin.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, resp.ID)

	_, err = f.service.TransitionOrder(context.Background(), nil, admin.ID, order.ID, string(models.OrderStatusAccepted))
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParticipant)
}

func TestOrderService_Transition_UnknownStatus(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	order := f.newOrder(models.OrderStatusRequested)

	_, err := f.service.TransitionOrder(context.Background(), nil, f.creator.ID, order.ID, "shipped")
	assertAppCode(t, err, apperrors.CodeValidationFailed)
}

func TestOrderService_ListOrders(t *testing.T) {
	t.Parallel()
	f := newOrderFixture(t)
	f.newOrder(models.OrderStatusRequested)
	f.newOrder(models.OrderStatusCompleted)

	resp, err := f.service.ListOrders(nil, f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
}
