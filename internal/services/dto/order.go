package dto

import (
	"time"

	"handwork_backend/internal/models"
)

// CreateOrderRequest - заказчик открывает заказ у конкретного мастера.
type CreateOrderRequest struct {
	CreatorID       string     `json:"creator_id" validate:"required,uuid"`
	Title           string     `json:"title" validate:"required,min=5"`
	Description     string     `json:"description" validate:"required,min=10"`
	Budget          float64    `json:"budget" validate:"required,gt=0"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	ReferenceImages []string   `json:"reference_images,omitempty"`
}

// TransitionOrderRequest - запрос смены статуса заказа.
type TransitionOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderResponse - заказ глазами его участника.
type OrderResponse struct {
	ID              string             `json:"id"`
	CustomerID      string             `json:"customer_id"`
	CreatorID       string             `json:"creator_id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Budget          float64            `json:"budget"`
	Deadline        *time.Time         `json:"deadline,omitempty"`
	ReferenceImages []string           `json:"reference_images"`
	Status          models.OrderStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`

	Customer *PartyInfo      `json:"customer,omitempty"`
	Creator  *PartyInfo      `json:"creator,omitempty"`
	Review   *ReviewResponse `json:"review,omitempty"`
}

// PartyInfo - краткая информация об участнике заказа.
type PartyInfo struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// OrderListResponse - заказы пользователя.
type OrderListResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Total  int64            `json:"total"`
}
