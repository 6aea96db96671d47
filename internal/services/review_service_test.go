package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"handwork_backend/internal/models"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	orders   *fakeOrderRepo
	reviews  *fakeReviewRepo
	service  ReviewService
	customer *models.User
	creator  *models.User
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	orders := newFakeOrderRepo()
	reviews := newFakeReviewRepo(profiles)

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
	profiles.profiles[creator.ID] = &models.Profile{UserID: creator.ID, FullName: "Мастер"}

	return &reviewFixture{
		users:    users,
		profiles: profiles,
		orders:   orders,
		reviews:  reviews,
		service:  NewReviewService(reviews, orders),
		customer: customer,
		creator:  creator,
	}
}

func (f *reviewFixture) completedOrder() *models.Order {
	return f.orders.add(&models.Order{
		CustomerID: f.customer.ID,
		CreatorID:  f.creator.ID,
		Title:      "Керамическая ваза",
		Budget:     80,
		Status:     models.OrderStatusCompleted,
	})
}

func TestReviewService_SubmitReview(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	order := f.completedOrder()

	resp, err := f.service.SubmitReview(context.Background(), nil, f.customer.ID, &dto.CreateReviewRequest{
		OrderID: order.ID,
		Rating:  4,
		Comment: "Отличная работа",
	})
	require.NoError(t, err)
	assert.Equal(t, f.creator.ID, resp.TargetID)
	assert.Equal(t, f.customer.ID, resp.AuthorID)

	profile := f.profiles.profiles[f.creator.ID]
	assert.Equal(t, 4.0, profile.Rating)
	assert.Equal(t, int64(1), profile.ReviewCount)
}

// Агрегат - точное среднее по полному набору отзывов, без скользящих формул.
func TestReviewService_AggregateIsExactMean(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	ctx := context.Background()

	ratings := []int{5, 3, 4, 1, 5}
	for _, rating := range ratings {
		order := f.completedOrder()
		_, err := f.service.SubmitReview(ctx, nil, f.customer.ID, &dto.CreateReviewRequest{
			OrderID: order.ID,
			Rating:  rating,
		})
		require.NoError(t, err)
	}

	profile := f.profiles.profiles[f.creator.ID]
	assert.InDelta(t, 3.6, profile.Rating, 1e-9) // (5+3+4+1+5)/5
	assert.Equal(t, int64(5), profile.ReviewCount)
}

func TestReviewService_DuplicateReview(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	ctx := context.Background()
	order := f.completedOrder()

	_, err := f.service.SubmitReview(ctx, nil, f.customer.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 5})
	require.NoError(t, err)

	_, err = f.service.SubmitReview(ctx, nil, f.customer.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 1})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReview)

	// Повторная попытка не исказила агрегат.
	profile := f.profiles.profiles[f.creator.ID]
	assert.Equal(t, 5.0, profile.Rating)
	assert.Equal(t, int64(1), profile.ReviewCount)
}

func TestReviewService_OnlyCustomerReviews(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	ctx := context.Background()
	order := f.completedOrder()

	// Мастер не может оставить отзыв сам себе.
	_, err := f.service.SubmitReview(ctx, nil, f.creator.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	// Посторонний вообще не видит заказ.
	stranger := f.users.add(&models.User{Email: "x@test.local", Role: models.UserRoleCustomer, Status: models.UserStatusActive})
	_, err = f.service.SubmitReview(ctx, nil, stranger.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParticipant)
}

func TestReviewService_OrderMustBeCompleted(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)

	for _, status := range []models.OrderStatus{
		models.OrderStatusRequested,
		models.OrderStatusInProgress,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	} {
		order := f.orders.add(&models.Order{
			CustomerID: f.customer.ID,
			CreatorID:  f.creator.ID,
			Status:     status,
		})
		_, err := f.service.SubmitReview(context.Background(), nil, f.customer.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: 5})
		assert.ErrorIs(t, err, apperrors.ErrOrderNotCompleted, "status %s", status)
	}
}

func TestReviewService_InvalidRating(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	order := f.completedOrder()

	for _, rating := range []int{0, -1, 6} {
		_, err := f.service.SubmitReview(context.Background(), nil, f.customer.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: rating})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRating, "rating %d", rating)
	}
}

// Конкурентные отзывы по разным заказам одного мастера: агрегат сходится
// к точному среднему независимо от порядка вставок.
func TestReviewService_ConcurrentReviews(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	ctx := context.Background()

	const n = 20
	orders := make([]*models.Order, n)
	customers := make([]*models.User, n)
	for i := 0; i < n; i++ {
		customers[i] = f.users.add(&models.User{
			Email:  fmt.Sprintf("c%d@test.local", i),
			Role:   models.UserRoleCustomer,
			Status: models.UserStatusActive,
		})
		orders[i] = f.orders.add(&models.Order{
			CustomerID: customers[i].ID,
			CreatorID:  f.creator.ID,
			Status:     models.OrderStatusCompleted,
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rating := i%5 + 1
			_, err := f.service.SubmitReview(ctx, nil, customers[i].ID, &dto.CreateReviewRequest{
				OrderID: orders[i].ID,
				Rating:  rating,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// 20 отзывов с рейтингами 1..5 по кругу: среднее ровно 3.
	profile := f.profiles.profiles[f.creator.ID]
	assert.Equal(t, int64(n), profile.ReviewCount)
	assert.InDelta(t, 3.0, profile.Rating, 1e-9)
}

func TestReviewService_GetCreatorReviews(t *testing.T) {
	t.Parallel()
	f := newReviewFixture(t)
	ctx := context.Background()

	for _, rating := range []int{2, 4} {
		order := f.completedOrder()
		_, err := f.service.SubmitReview(ctx, nil, f.customer.ID, &dto.CreateReviewRequest{OrderID: order.ID, Rating: rating})
		require.NoError(t, err)
	}

	resp, err := f.service.GetCreatorReviews(nil, f.creator.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Reviews, 2)
	assert.Equal(t, int64(2), resp.ReviewCount)
	assert.InDelta(t, 3.0, resp.AverageRating, 1e-9)
}
