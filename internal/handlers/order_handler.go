package handlers

import (
	"net/http"

	"handwork_backend/internal/middleware"
	"handwork_backend/internal/models"
	"handwork_backend/internal/services"
	"handwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	*BaseHandler
	orderService services.OrderService
}

func NewOrderHandler(base *BaseHandler, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  base,
		orderService: orderService,
	}
}

func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	orders.Use(middleware.AuthMiddleware())
	{
		orders.POST("", middleware.RoleMiddleware(models.UserRoleCustomer), h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:orderId", h.GetOrder)
		orders.POST("/:orderId/transition", h.TransitionOrder)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.ListOrders(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(h.GetDB(c), userID, c.Param("orderId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) TransitionOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.TransitionOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	order, err := h.orderService.TransitionOrder(c.Request.Context(), h.GetDB(c), userID, c.Param("orderId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
