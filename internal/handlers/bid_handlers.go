package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/job-bids/internal/auth"
	"github.com/senyabanana/job-bids/internal/models"
	"github.com/senyabanana/job-bids/internal/utils"
)

// BidService - операции с предложениями, нужные обработчикам.
type BidService interface {
	CreateBid(ctx context.Context, requester string, bid models.Bid) (*models.Bid, error)
	GetUserBids(ctx context.Context, requester, email string, buyer bool) ([]models.Bid, error)
	UpdateBidStatus(ctx context.Context, requester, bidId string, status models.Status) (*models.Bid, error)
}

// BidHandler - структура для обработки HTTP-запросов.
type BidHandler struct {
	Service BidService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service BidService, logger *log.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateBid обрабатывает запросы для создания предложения.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	requester, _ := auth.EmailFromContext(ctx)

	var bid models.Bid
	if err := json.NewDecoder(r.Body).Decode(&bid); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newBid, err := h.Service.CreateBid(ctx, requester, bid)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to create bid")
		return
	}

	utils.SendJSON(w, h.Logger, newBid)
}

// GetUserBids обрабатывает запросы для получения списка предложений пользователя.
// С параметром buyer=true возвращает предложения на заказы пользователя.
func (h *BidHandler) GetUserBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	requester, _ := auth.EmailFromContext(ctx)
	email := r.PathValue("email")
	buyer := r.URL.Query().Get("buyer") == "true"

	bids, err := h.Service.GetUserBids(ctx, requester, email, buyer)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to retrieve bids")
		return
	}

	utils.SendJSON(w, h.Logger, bids)
}

// UpdateBidStatus обрабатывает запросы для изменения статуса предложения.
func (h *BidHandler) UpdateBidStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	requester, _ := auth.EmailFromContext(ctx)
	bidId := r.PathValue("id")

	var update models.BidStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := models.ParseStatus(string(update.Status))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	bid, err := h.Service.UpdateBidStatus(ctx, requester, bidId, status)
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to update bid status")
		return
	}

	utils.SendJSON(w, h.Logger, bid)
}
