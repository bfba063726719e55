// Package submission проверяет и отправляет предложение по заказу.
package submission

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/senyabanana/job-bids/internal/client"
	"github.com/senyabanana/job-bids/internal/models"
	"github.com/senyabanana/job-bids/internal/ui"
)

// MyBidsPath - экран со своими предложениями, куда ведет успешная отправка.
const MyBidsPath = "/my-bids"

// Guard - проверка формы, отклонившая предложение.
type Guard string

const (
	SelfBid         Guard = "self-bid"
	JobClosed       Guard = "job-deadline"
	DeadlinePromise Guard = "proposed-deadline"
	PriceCeiling    Guard = "price-ceiling"
	PriceNotANumber Guard = "price-format"
)

const (
	successMessage  = "Bid placed successfully!"
	fallbackFailMsg = "Failed to place bid"
)

var messages = map[Guard]string{
	SelfBid:         "You are not permitted to bid on your own job",
	JobClosed:       "The deadline for applying to this job has passed",
	DeadlinePromise: "You must finish the work within the job deadline",
	PriceCeiling:    "You cannot offer more than the maximum price",
	PriceNotANumber: "Price must be a number",
}

// ErrRejected - предложение не прошло проверку и не отправлялось.
var ErrRejected = errors.New("bid rejected")

// Rejection описывает отказ конкретной проверки.
type Rejection struct {
	Guard   Guard
	Message string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("bid rejected by %s guard: %s", r.Guard, r.Message)
}

// Is позволяет сравнивать отказ с ErrRejected.
func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}

func reject(g Guard) *Rejection {
	return &Rejection{Guard: g, Message: messages[g]}
}

// Form - поля формы "Place A Bid".
type Form struct {
	Price    string `validate:"required,numeric"`
	Comment  string
	Deadline time.Time
}

// NewForm возвращает форму, в которой срок заранее равен сроку заказа.
func NewForm(job models.Job) Form {
	return Form{Deadline: job.Deadline}
}

// BidCreator сохраняет предложение.
type BidCreator interface {
	CreateBid(ctx context.Context, bid models.Bid) (*models.Bid, error)
}

// Workflow проводит отправку предложения.
type Workflow struct {
	Creator   BidCreator
	Notifier  ui.Notifier
	Navigator ui.Navigator
	Logger    *log.Logger
	Now       func() time.Time

	validate *validator.Validate
}

// NewWorkflow создает новый экземпляр Workflow.
func NewWorkflow(creator BidCreator, notifier ui.Notifier, navigator ui.Navigator, logger *log.Logger) *Workflow {
	return &Workflow{
		Creator:   creator,
		Notifier:  notifier,
		Navigator: navigator,
		Logger:    logger,
		Now:       time.Now,
		validate:  validator.New(),
	}
}

// Validate прогоняет проверки в фиксированном порядке и возвращает цену.
// Нижняя граница цены (min_price) не проверяется.
func (w *Workflow) Validate(job models.Job, userEmail string, form Form) (float64, error) {
	if job.Buyer.Email == userEmail {
		return 0, reject(SelfBid)
	}
	if w.Now().After(job.Deadline) {
		return 0, reject(JobClosed)
	}
	if form.Deadline.After(job.Deadline) {
		return 0, reject(DeadlinePromise)
	}

	form.Price = strings.TrimSpace(form.Price)
	if err := w.validate.Struct(form); err != nil {
		return 0, reject(PriceNotANumber)
	}
	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil {
		return 0, reject(PriceNotANumber)
	}
	if price > job.MaxPrice {
		return 0, reject(PriceCeiling)
	}
	return price, nil
}

// Build собирает запись предложения. Поля заказа копируются как снимок.
func Build(job models.Job, userEmail string, form Form, price float64) models.Bid {
	return models.Bid{
		JobID:      job.ID,
		Title:      job.Title,
		Category:   job.Category,
		Email:      userEmail,
		BuyerEmail: job.Buyer.Email,
		Price:      price,
		Comment:    form.Comment,
		Deadline:   form.Deadline,
		Status:     models.Pending,
	}
}

// Submit проверяет форму и отправляет предложение. При успехе форма очищается,
// показывается уведомление и открывается список своих предложений.
func (w *Workflow) Submit(ctx context.Context, job models.Job, userEmail string, form *Form) (*models.Bid, error) {
	price, err := w.Validate(job, userEmail, *form)
	if err != nil {
		var rejection *Rejection
		if errors.As(err, &rejection) {
			w.Notifier.Error(rejection.Message)
		}
		return nil, err
	}

	created, err := w.Creator.CreateBid(ctx, Build(job, userEmail, *form, price))
	if err != nil {
		w.Logger.Println(err)
		message := client.Reason(err)
		if message == "" {
			message = fallbackFailMsg
		}
		w.Notifier.Error(message)
		return nil, fmt.Errorf("create bid: %w", err)
	}

	*form = Form{}
	w.Notifier.Success(successMessage)
	if w.Navigator != nil {
		w.Navigator.NavigateTo(MyBidsPath)
	}
	return created, nil
}
