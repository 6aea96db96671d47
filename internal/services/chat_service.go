package services

import (
	"errors"
	"strings"

	"handwork_backend/internal/models"
	"handwork_backend/internal/repositories"
	"handwork_backend/internal/services/dto"
	"handwork_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ChatService interface {
	// SendMessage добавляет запись в журнал переписки заказа. Писать могут
	// только обе стороны заказа, содержимое обрезается по краям и не может
	// быть пустым.
	SendMessage(db *gorm.DB, userID, orderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error)

	// GetMessages - журнал заказа в хронологическом порядке.
	GetMessages(db *gorm.DB, userID, orderID string) (*dto.MessageListResponse, error)
}

type chatService struct {
	messageRepo repositories.MessageRepository
	orderRepo   repositories.OrderRepository
}

func NewChatService(messageRepo repositories.MessageRepository, orderRepo repositories.OrderRepository) ChatService {
	return &chatService{
		messageRepo: messageRepo,
		orderRepo:   orderRepo,
	}
}

func (s *chatService) SendMessage(db *gorm.DB, userID, orderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	if err := s.requireParticipant(db, userID, orderID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyMessage
	}

	message := &models.Message{
		OrderID:  orderID,
		SenderID: userID,
		Content:  content,
	}
	if err := s.messageRepo.Create(db, message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildMessageResponse(message), nil
}

func (s *chatService) GetMessages(db *gorm.DB, userID, orderID string) (*dto.MessageListResponse, error) {
	if err := s.requireParticipant(db, userID, orderID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByOrder(db, orderID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, s.buildMessageResponse(&messages[i]))
	}
	return &dto.MessageListResponse{
		Messages: responses,
		Total:    int64(len(responses)),
	}, nil
}

func (s *chatService) requireParticipant(db *gorm.DB, userID, orderID string) error {
	order, err := s.orderRepo.FindByID(db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if !order.Participant(userID) {
		return apperrors.ErrNotOrderParticipant
	}
	return nil
}

func (s *chatService) buildMessageResponse(message *models.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		ID:        message.ID,
		OrderID:   message.OrderID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
		Sender:    buildPartyInfo(message.Sender),
	}
}
