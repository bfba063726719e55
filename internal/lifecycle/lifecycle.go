// Package lifecycle описывает переходы статусов предложения.
// Правила для покупателя и исполнителя заданы данными; их проверяют и клиент, и сервер.
package lifecycle

import (
	"fmt"

	"github.com/senyabanana/job-bids/internal/models"
)

// Role - кто запрашивает смену статуса.
type Role string

const (
	Buyer  Role = "buyer"  // Владелец заказа разбирает входящие предложения
	Bidder Role = "bidder" // Автор предложения управляет своими предложениями
)

// Rule запрещает переход, если Deny возвращает true.
type Rule struct {
	Deny   func(current, requested models.Status) bool
	Reason string
}

// GuardResult - итог проверки перехода.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error превращает отказ в ошибку.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrTransitionRejected, r.Reason)
}

// Policies - таблица правил по ролям.
var Policies = map[Role][]Rule{
	Buyer: {
		{
			Deny:   func(current, requested models.Status) bool { return current == requested },
			Reason: "bid already has the requested status",
		},
		{
			Deny:   func(_, requested models.Status) bool { return requested == models.Completed },
			Reason: "buyer cannot mark a bid as completed",
		},
	},
	Bidder: {
		{
			Deny:   func(current, _ models.Status) bool { return current != models.InProgress },
			Reason: "only bids in progress can be updated by the bidder",
		},
	},
}

// Check проверяет переход current -> requested для роли.
func Check(role Role, current, requested models.Status) GuardResult {
	rules, ok := Policies[role]
	if !ok {
		return GuardResult{Reason: fmt.Sprintf("unknown role %q", role)}
	}
	if !current.Valid() {
		return GuardResult{Reason: fmt.Sprintf("unknown current status %q", current)}
	}
	if !requested.Valid() {
		return GuardResult{Reason: fmt.Sprintf("unknown requested status %q", requested)}
	}

	for _, rule := range rules {
		if rule.Deny(current, requested) {
			return GuardResult{Reason: rule.Reason}
		}
	}
	return GuardResult{Allowed: true}
}

// CanTransition сообщает, разрешен ли переход.
func CanTransition(role Role, current, requested models.Status) bool {
	return Check(role, current, requested).Allowed
}

// Action - кнопка в строке таблицы.
type Action struct {
	Label      string
	Target     models.Status
	DisabledOn []models.Status
}

// Enabled сообщает, активна ли кнопка при текущем статусе.
func (a Action) Enabled(current models.Status) bool {
	for _, s := range a.DisabledOn {
		if s == current {
			return false
		}
	}
	return true
}

// Actions - кнопки, которые показывает таблица каждой роли.
// Кнопки отключаются строже, чем требуют правила: для завершенного предложения
// покупатель не видит активных действий.
var Actions = map[Role][]Action{
	Buyer: {
		{Label: "Accept", Target: models.InProgress, DisabledOn: []models.Status{models.InProgress, models.Completed}},
		{Label: "Reject", Target: models.Rejected, DisabledOn: []models.Status{models.Rejected, models.Completed}},
	},
	Bidder: {
		{Label: "Complete", Target: models.Completed, DisabledOn: []models.Status{models.Pending, models.Rejected, models.Completed}},
	},
}

// EnabledActions возвращает активные кнопки для статуса.
func EnabledActions(role Role, current models.Status) []Action {
	var enabled []Action
	for _, a := range Actions[role] {
		if a.Enabled(current) {
			enabled = append(enabled, a)
		}
	}
	return enabled
}
