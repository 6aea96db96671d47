package handlers

import (
	"net/http"

	"handwork_backend/internal/services"
	"handwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SupportHandler struct {
	*BaseHandler
	notifications *services.NotificationService
}

func NewSupportHandler(base *BaseHandler, notifications *services.NotificationService) *SupportHandler {
	return &SupportHandler{
		BaseHandler:   base,
		notifications: notifications,
	}
}

func (h *SupportHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/support", h.CreateSupportRequest)
}

func (h *SupportHandler) CreateSupportRequest(c *gin.Context) {
	var req dto.SupportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	h.notifications.HandleSupportRequest(c.Request.Context(), &req)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
