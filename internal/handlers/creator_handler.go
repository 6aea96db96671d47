package handlers

import (
	"net/http"

	"handwork_backend/internal/middleware"
	"handwork_backend/internal/models"
	"handwork_backend/internal/services"
	"handwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	*BaseHandler
	creatorService services.CreatorService
	reviewService  services.ReviewService
}

func NewCreatorHandler(base *BaseHandler, creatorService services.CreatorService, reviewService services.ReviewService) *CreatorHandler {
	return &CreatorHandler{
		BaseHandler:    base,
		creatorService: creatorService,
		reviewService:  reviewService,
	}
}

func (h *CreatorHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Публичный каталог активных мастеров
	public := r.Group("/creators")
	{
		public.GET("", h.ListActiveCreators)
		public.GET("/:creatorId", h.GetCreatorCard)
		public.GET("/:creatorId/reviews", h.GetCreatorReviews)
	}

	// Кабинет мастера
	profile := r.Group("/profile")
	profile.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleCreator))
	{
		profile.POST("", h.SubmitProfile)
		profile.GET("/me", h.GetMyProfile)
		profile.PUT("/availability", h.SetAvailability)
	}

	// Модерация заявок
	admin := r.Group("/admin/creators")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("/pending", h.ListPendingCreators)
		admin.POST("/:creatorId/approve", h.ApproveCreator)
		admin.POST("/:creatorId/reject", h.RejectCreator)
	}
}

// --- Public handlers ---

func (h *CreatorHandler) ListActiveCreators(c *gin.Context) {
	resp, err := h.creatorService.ListActiveCreators(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreatorHandler) GetCreatorCard(c *gin.Context) {
	card, err := h.creatorService.GetCreatorCard(h.GetDB(c), c.Param("creatorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CreatorHandler) GetCreatorReviews(c *gin.Context) {
	resp, err := h.reviewService.GetCreatorReviews(h.GetDB(c), c.Param("creatorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Creator handlers ---

func (h *CreatorHandler) SubmitProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.creatorService.SubmitProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *CreatorHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.creatorService.GetMyProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *CreatorHandler) SetAvailability(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetAvailabilityRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.creatorService.SetAvailability(c.Request.Context(), h.GetDB(c), userID, req.Available); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": req.Available})
}

// --- Admin handlers ---

func (h *CreatorHandler) ListPendingCreators(c *gin.Context) {
	resp, err := h.creatorService.ListPendingCreators(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreatorHandler) ApproveCreator(c *gin.Context) {
	if err := h.creatorService.ApproveCreator(c.Request.Context(), h.GetDB(c), c.Param("creatorId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.UserStatusActive})
}

func (h *CreatorHandler) RejectCreator(c *gin.Context) {
	if err := h.creatorService.RejectCreator(c.Request.Context(), h.GetDB(c), c.Param("creatorId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.UserStatusPendingVerification})
}
