package dto

import "time"

// CreateReviewRequest - отзыв заказчика по завершённому заказу.
type CreateReviewRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// ReviewResponse - отзыв по заказу.
type ReviewResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	AuthorID  string    `json:"author_id"`
	TargetID  string    `json:"target_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	Author *PartyInfo `json:"author,omitempty"`
}

// CreatorReviewsResponse - отзывы мастера вместе с точным агрегатом.
type CreatorReviewsResponse struct {
	Reviews       []*ReviewResponse `json:"reviews"`
	AverageRating float64           `json:"average_rating"`
	ReviewCount   int64             `json:"review_count"`
}
