package handlers

import (
	"net/http"

	"handwork_backend/internal/middleware"
	"handwork_backend/internal/services"
	"handwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("/:orderId/messages", h.SendMessage)
		orders.GET("/:orderId/messages", h.GetMessages)
	}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.chatService.SendMessage(h.GetDB(c), userID, c.Param("orderId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.chatService.GetMessages(h.GetDB(c), userID, c.Param("orderId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
