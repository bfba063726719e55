package models

import (
	"fmt"
	"time"
)

// Status - стадия жизненного цикла предложения.
type Status string

const (
	Pending    Status = "Pending"     // Предложение отправлено
	InProgress Status = "In Progress" // Покупатель принял предложение в работу
	Rejected   Status = "Rejected"    // Покупатель отклонил предложение
	Completed  Status = "Completed"   // Исполнитель завершил работу
)

// Statuses перечисляет все допустимые статусы.
var Statuses = []Status{Pending, InProgress, Rejected, Completed}

// Valid сообщает, входит ли статус в перечисление.
func (s Status) Valid() bool {
	switch s {
	case Pending, InProgress, Rejected, Completed:
		return true
	}
	return false
}

// ParseStatus разбирает строку в статус.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown bid status %q", raw)
	}
	return s, nil
}

// Bid представляет модель предложения.
// Название, категория и почта покупателя копируются из заказа в момент создания
// и дальше с ним не синхронизируются.
type Bid struct {
	ID         string    `json:"id"`
	JobID      string    `json:"jobId" validate:"required"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Email      string    `json:"email" validate:"required,email"`
	BuyerEmail string    `json:"buyer_email" validate:"required,email"`
	Price      float64   `json:"price" validate:"gte=0"`
	Comment    string    `json:"comment"`
	Deadline   time.Time `json:"deadline" validate:"required"`
	Status     Status    `json:"status" validate:"required"`
}

// BidStatusUpdate - тело запроса на смену статуса.
type BidStatusUpdate struct {
	Status Status `json:"status"`
}
