package services

import (
	"fmt"
	"testing"

	"handwork_backend/internal/models"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	users    *fakeUserRepo
	orders   *fakeOrderRepo
	messages *fakeMessageRepo
	service  ChatService
	customer *models.User
	creator  *models.User
	order    *models.Order
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	users := newFakeUserRepo()
	orders := newFakeOrderRepo()
	messages := newFakeMessageRepo()

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
	order := orders.add(&models.Order{
		CustomerID: customer.ID,
		CreatorID:  creator.ID,
		Status:     models.OrderStatusInProgress,
	})

	return &chatFixture{
		users:    users,
		orders:   orders,
		messages: messages,
		service:  NewChatService(messages, orders),
		customer: customer,
		creator:  creator,
		order:    order,
	}
}

func TestChatService_SendMessage_TrimsContent(t *testing.T) {
	t.Parallel()
	f := newChatFixture(t)

	resp, err := f.service.SendMessage(nil, f.customer.ID, f.order.ID, &dto.SendMessageRequest{
		Content: "  Когда будет готово?  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Когда будет готово?", resp.Content)
	assert.Equal(t, f.customer.ID, resp.SenderID)
}

func TestChatService_SendMessage_EmptyRejected(t *testing.T) {
	t.Parallel()
	f := newChatFixture(t)

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := f.service.SendMessage(nil, f.creator.ID, f.order.ID, &dto.SendMessageRequest{Content: content})
		assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)
	}
}

func TestChatService_ParticipantsOnly(t *testing.T) {
	t.Parallel()
	f := newChatFixture(t)
	stranger := f.users.add(&models.User{
		Email:  "stranger@test.local",
		Role:   models.UserRoleCustomer,
		Status: models.UserStatusActive,
	})

	_, err := f.service.SendMessage(nil, stranger.ID, f.order.ID, &dto.SendMessageRequest{Content: "привет"})
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParticipant)

	_, err = f.service.GetMessages(nil, stranger.ID, f.order.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotOrderParticipant)
}

// Журнал возвращается в порядке отправки, переписка видна обеим сторонам.
func TestChatService_GetMessages_Chronological(t *testing.T) {
	t.Parallel()
	f := newChatFixture(t)

	senders := []string{f.customer.ID, f.creator.ID, f.customer.ID}
	for i, sender := range senders {
		_, err := f.service.SendMessage(nil, sender, f.order.ID, &dto.SendMessageRequest{
			Content: fmt.Sprintf("сообщение %d", i),
		})
		require.NoError(t, err)
	}

	for _, viewer := range []string{f.customer.ID, f.creator.ID} {
		resp, err := f.service.GetMessages(nil, viewer, f.order.ID)
		require.NoError(t, err)
		require.Equal(t, int64(3), resp.Total)
		for i, msg := range resp.Messages {
			assert.Equal(t, fmt.Sprintf("сообщение %d", i), msg.Content)
			assert.Equal(t, senders[i], msg.SenderID)
		}
	}
}

func TestChatService_UnknownOrder(t *testing.T) {
	t.Parallel()
	f := newChatFixture(t)

	_, err := f.service.SendMessage(nil, f.customer.ID, "missing-order", &dto.SendMessageRequest{Content: "эй"})
	assertAppCode(t, err, apperrors.CodeNotFound)
}
