package handlers

import (
	"net/http"

	"handwork_backend/internal/middleware"
	"handwork_backend/internal/models"
	"handwork_backend/internal/services"
	"handwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	{
		// Callback зовёт шлюз, не пользователь: авторизация - подпись запроса.
		payments.POST("/callback", h.HandleCallback)
		payments.GET("/callback", h.HandleCallback)

		payments.POST("", middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCustomer), h.InitiatePayment)
	}
}

func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.InitiatePaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.InitiatePayment(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PaymentHandler) HandleCallback(c *gin.Context) {
	// ShouldBind внутри разберёт и query (GET), и form (POST).
	var req dto.PaymentCallbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.paymentService.HandleCallback(c.Request.Context(), h.GetDB(c), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Формат ответа, который ожидает Robokassa.
	c.String(http.StatusOK, "OK"+req.InvID)
}
