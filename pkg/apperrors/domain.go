package apperrors

import (
	"net/http"
)

/*
Предопределенные доменные ошибки и фабрики.
Сервисы возвращают их напрямую, хэндлеры отдают клиенту через HandleError.
*/

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrInvalidTransition - переход заказа невозможен из текущего статуса.
func ErrInvalidTransition(message string) *AppError {
	return New(CodeInvalidTransition, "order", message, http.StatusConflict)
}

// --- Auth & User ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 6 characters required.",
	http.StatusBadRequest,
)

// --- Creator trust ---

// ErrInvalidProfile - анкета не проходит обязательные требования
// (портфолио и фото инструментов обязательны).
func ErrInvalidProfile(details interface{}) *AppError {
	return New(CodeValidationFailed, "profile", "Profile does not satisfy mandatory evidence requirements", http.StatusBadRequest).WithDetails(details)
}

var ErrCreatorNotApprovable = New(
	CodeInvalidState,
	"profile",
	"Creator is not awaiting approval",
	http.StatusConflict,
)

var ErrCreatorNotActive = New(
	CodeInvalidState,
	"order",
	"Creator is not accepting orders",
	http.StatusConflict,
)

// --- Orders ---

var ErrNotOrderParticipant = New(
	CodeForbidden,
	"order",
	"You are not a participant of this order",
	http.StatusForbidden,
)

var ErrWrongTransitionActor = New(
	CodeForbidden,
	"order",
	"This status change is not available to you",
	http.StatusForbidden,
)

var ErrPaymentRequired = New(
	CodeInvalidState,
	"order",
	"Order has no confirmed payment",
	http.StatusConflict,
)

// --- Payments ---

var ErrInvalidPaymentAmount = New(
	CodeConflict,
	"payment",
	"Payment amount does not match the order budget",
	http.StatusConflict,
)

var ErrPaymentInvalidState = New(
	CodeInvalidState,
	"payment",
	"Order is not awaiting payment",
	http.StatusConflict,
)

// ErrPaymentInitiationFailed - шлюз недоступен, операция может быть повторена.
func ErrPaymentInitiationFailed(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "payment", "Payment initiation failed, please retry", http.StatusServiceUnavailable)
}

var ErrPaymentSignatureMismatch = New(
	CodeForbidden,
	"payment",
	"Payment callback signature mismatch",
	http.StatusForbidden,
)

// --- Reviews ---

var ErrDuplicateReview = New(
	CodeAlreadyExists,
	"review",
	"Review already exists for this order",
	http.StatusConflict,
)

var ErrInvalidRating = New(
	CodeValidationFailed,
	"review",
	"Rating must be between 1 and 5",
	http.StatusBadRequest,
)

var ErrOrderNotCompleted = New(
	CodeInvalidState,
	"review",
	"Only completed orders can be reviewed",
	http.StatusConflict,
)

// --- Chat ---

var ErrEmptyMessage = New(
	CodeValidationFailed,
	"chat",
	"Message content must not be empty",
	http.StatusBadRequest,
)
