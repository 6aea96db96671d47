package dto

// SupportRequest - обращение пользователя в поддержку.
type SupportRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=3"`
	Message string `json:"message" validate:"required,min=10"`
}
