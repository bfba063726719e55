// Package views - таблицы и карточки, которые CLI показывает пользователю.
package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/senyabanana/job-bids/internal/lifecycle"
	"github.com/senyabanana/job-bids/internal/models"
)

// DateLayout - формат дат в таблицах.
const DateLayout = "01/02/2006"

// ErrBidNotFound - в загруженной таблице нет предложения с таким id.
var ErrBidNotFound = errors.New("bid not found in table")

// BidSource загружает списки предложений.
type BidSource interface {
	MyBids(ctx context.Context, email string) ([]models.Bid, error)
	BidRequests(ctx context.Context, email string) ([]models.Bid, error)
}

// BidTable - таблица "My Bids" (исполнитель) или "Bid Requests" (покупатель).
type BidTable struct {
	role         lifecycle.Role
	email        string
	source       BidSource
	transitioner *lifecycle.Transitioner

	mu         sync.Mutex
	generation uint64
	rows       []models.Bid
}

// NewBidTable создает таблицу для роли role пользователя email.
func NewBidTable(role lifecycle.Role, email string, source BidSource, transitioner *lifecycle.Transitioner) *BidTable {
	return &BidTable{
		role:         role,
		email:        email,
		source:       source,
		transitioner: transitioner,
	}
}

// Load перечитывает строки. Ответ загрузки, начатой раньше другой, не применяется.
func (t *BidTable) Load(ctx context.Context) error {
	t.mu.Lock()
	t.generation++
	generation := t.generation
	t.mu.Unlock()

	bids, err := t.fetch(ctx)
	if err != nil {
		return fmt.Errorf("load %s bids: %w", t.role, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if generation != t.generation {
		return nil
	}
	t.rows = bids
	return nil
}

func (t *BidTable) fetch(ctx context.Context) ([]models.Bid, error) {
	if t.role == lifecycle.Buyer {
		return t.source.BidRequests(ctx, t.email)
	}
	return t.source.MyBids(ctx, t.email)
}

// Rows возвращает копию текущих строк в порядке сервера.
func (t *BidTable) Rows() []models.Bid {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows := make([]models.Bid, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// ChangeStatus запрашивает новый статус для строки id.
func (t *BidTable) ChangeStatus(ctx context.Context, id string, requested models.Status) error {
	current, ok := t.status(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBidNotFound, id)
	}
	return t.transitioner.Request(ctx, t.role, id, current, requested, t.Load)
}

func (t *BidTable) status(id string) (models.Status, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, bid := range t.rows {
		if bid.ID == id {
			return bid.Status, true
		}
	}
	return "", false
}

// Render печатает таблицу.
func (t *BidTable) Render(w io.Writer) error {
	rows := t.Rows()

	title, counter := "My Bids", fmt.Sprintf("%d Bid", len(rows))
	headers := []string{"ID", "TITLE", "DEADLINE", "PRICE", "CATEGORY", "STATUS", "ACTIONS"}
	if t.role == lifecycle.Buyer {
		title, counter = "Bid Requests", fmt.Sprintf("%d Requests", len(rows))
		headers = []string{"ID", "TITLE", "EMAIL", "DEADLINE", "PRICE", "CATEGORY", "STATUS", "ACTIONS"}
	}

	if _, err := fmt.Fprintf(w, "%s (%s)\n\n", color.New(color.Bold).Sprint(title), counter); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, bid := range rows {
		cells := []string{bid.ID, bid.Title}
		if t.role == lifecycle.Buyer {
			cells = append(cells, bid.Email)
		}
		cells = append(cells,
			bid.Deadline.Format(DateLayout),
			FormatPrice(bid.Price),
			bid.Category,
			StatusLabel(bid.Status),
			actionLabels(t.role, bid.Status),
		)
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func actionLabels(role lifecycle.Role, status models.Status) string {
	actions := lifecycle.EnabledActions(role, status)
	if len(actions) == 0 {
		return "-"
	}
	labels := make([]string, 0, len(actions))
	for _, a := range actions {
		labels = append(labels, strings.ToLower(a.Label))
	}
	return strings.Join(labels, ",")
}

// FormatPrice печатает цену в долларах.
func FormatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', -1, 64)
}

var statusColors = map[models.Status]*color.Color{
	models.Pending:    color.New(color.FgYellow),
	models.InProgress: color.New(color.FgBlue),
	models.Rejected:   color.New(color.FgRed),
	models.Completed:  color.New(color.FgGreen),
}

// StatusLabel раскрашивает статус.
func StatusLabel(status models.Status) string {
	if c, ok := statusColors[status]; ok {
		return c.Sprint(string(status))
	}
	return string(status)
}
