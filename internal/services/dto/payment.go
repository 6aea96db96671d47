package dto

import "time"

// InitiatePaymentRequest - заказчик оплачивает принятый заказ. Сумма обязана
// совпасть с бюджетом заказа, иначе оплата отклоняется.
type InitiatePaymentRequest struct {
	OrderID string  `json:"order_id" validate:"required,uuid"`
	Amount  float64 `json:"amount" validate:"required,gt=0"`
}

// InitiatePaymentResponse - ссылка на страницу оплаты шлюза.
type InitiatePaymentResponse struct {
	InvoiceID  string `json:"invoice_id"`
	PaymentURL string `json:"payment_url"`
}

// PaymentCallbackRequest - callback шлюза об успешной оплате.
// Форма параметров повторяет Robokassa Result URL.
type PaymentCallbackRequest struct {
	OutSum         float64 `form:"OutSum" validate:"required,gt=0"`
	InvID          string  `form:"InvId" validate:"required"`
	SignatureValue string  `form:"SignatureValue" validate:"required"`
}

// PaymentTransactionResponse - состояние платежа по заказу.
type PaymentTransactionResponse struct {
	ID        string     `json:"id"`
	OrderID   string     `json:"order_id"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	InvoiceID string     `json:"invoice_id"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
