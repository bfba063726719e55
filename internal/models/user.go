package models

// LoginRequest - тело запроса на выдачу токена.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}
