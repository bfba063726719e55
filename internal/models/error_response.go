package models

import "errors"

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}

// AsErrorResponse достает ErrorResponse из цепочки ошибок.
func AsErrorResponse(err error) (*ErrorResponse, bool) {
	var errorResponse *ErrorResponse
	if errors.As(err, &errorResponse) {
		return errorResponse, true
	}
	return nil, false
}
