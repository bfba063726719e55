package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/senyabanana/job-bids/internal/models"
	"github.com/senyabanana/job-bids/internal/ui"
)

// ErrTransitionRejected - переход запрещен правилами роли, запрос не отправлялся.
var ErrTransitionRejected = errors.New("status transition not allowed")

// StatusUpdater отправляет новый статус на сервер.
type StatusUpdater interface {
	UpdateBidStatus(ctx context.Context, id string, status models.Status) error
}

// Refresher перечитывает список предложений после смены статуса.
type Refresher func(ctx context.Context) error

// Transitioner проводит запрос смены статуса через правила и сервер.
type Transitioner struct {
	Updater  StatusUpdater
	Notifier ui.Notifier
	Logger   *log.Logger
}

// NewTransitioner создает новый экземпляр Transitioner.
func NewTransitioner(updater StatusUpdater, notifier ui.Notifier, logger *log.Logger) *Transitioner {
	return &Transitioner{
		Updater:  updater,
		Notifier: notifier,
		Logger:   logger,
	}
}

// Request меняет статус предложения id с current на requested.
// Запрещенный переход только логируется. Ошибка сервера логируется и показывается
// пользователю; после успешного PATCH список всегда перечитывается, и ошибка
// перечитывания тоже показывается.
func (t *Transitioner) Request(ctx context.Context, role Role, id string, current, requested models.Status, refresh Refresher) error {
	t.Logger.Printf("status change requested: id=%s role=%s %q -> %q", id, role, current, requested)

	result := Check(role, current, requested)
	if !result.Allowed {
		t.Logger.Printf("not allowed: %s", result.Reason)
		return result.Error()
	}

	if err := t.Updater.UpdateBidStatus(ctx, id, requested); err != nil {
		t.Logger.Println(err)
		if t.Notifier != nil {
			t.Notifier.Error(fmt.Sprintf("Failed to update bid status: %v", err))
		}
		return fmt.Errorf("update bid %s status: %w", id, err)
	}

	if refresh == nil {
		return nil
	}
	if err := refresh(ctx); err != nil {
		t.Logger.Println(err)
		if t.Notifier != nil {
			t.Notifier.Error(fmt.Sprintf("Bid updated, but the list could not be reloaded: %v", err))
		}
		return fmt.Errorf("refresh bids: %w", err)
	}
	return nil
}
