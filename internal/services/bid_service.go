package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/senyabanana/job-bids/internal/lifecycle"
	"github.com/senyabanana/job-bids/internal/models"
	"github.com/senyabanana/job-bids/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
)

type BidService struct {
	Repo     repository.BidRepository
	Jobs     repository.JobRepository
	validate *validator.Validate
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(repo repository.BidRepository, jobs repository.JobRepository) *BidService {
	return &BidService{Repo: repo, Jobs: jobs, validate: validator.New()}
}

// CreateBid сохраняет предложение пользователя requester.
func (s *BidService) CreateBid(ctx context.Context, requester string, bid models.Bid) (*models.Bid, error) {
	if err := s.validate.Struct(bid); err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid bid: %v", err))
	}
	if bid.Email != requester {
		return nil, models.NewErrorResponse(http.StatusForbidden, "forbidden access")
	}
	if bid.Status != models.Pending {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "new bid must have status Pending")
	}

	job, err := s.Jobs.GetJob(ctx, bid.JobID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewErrorResponse(http.StatusNotFound, "job not found")
	}
	if err != nil {
		return nil, err
	}
	if job.Buyer.Email != bid.BuyerEmail {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "buyer email does not match the job")
	}
	return s.Repo.CreateBid(ctx, bid)
}

// GetUserBids возвращает предложения пользователя email: отправленные им
// или, если buyer, полученные на его заказы.
func (s *BidService) GetUserBids(ctx context.Context, requester, email string, buyer bool) ([]models.Bid, error) {
	if email == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "email is required")
	}
	if email != requester {
		return nil, models.NewErrorResponse(http.StatusForbidden, "forbidden access")
	}
	if buyer {
		return s.Repo.GetBuyerBids(ctx, email)
	}
	return s.Repo.GetBidderBids(ctx, email)
}

// UpdateBidStatus меняет статус предложения по правилам роли, которую requester
// занимает в этом предложении.
func (s *BidService) UpdateBidStatus(ctx context.Context, requester, bidId string, status models.Status) (*models.Bid, error) {
	if !status.Valid() {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid bid status %q", status))
	}

	currentBid, err := s.Repo.GetBid(ctx, bidId)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewErrorResponse(http.StatusNotFound, "bid not found")
	}
	if err != nil {
		return nil, err
	}

	var role lifecycle.Role
	switch requester {
	case currentBid.BuyerEmail:
		role = lifecycle.Buyer
	case currentBid.Email:
		role = lifecycle.Bidder
	default:
		return nil, models.NewErrorResponse(http.StatusForbidden, "forbidden access")
	}

	if result := lifecycle.Check(role, currentBid.Status, status); !result.Allowed {
		return nil, models.NewErrorResponse(http.StatusBadRequest, result.Reason)
	}
	return s.Repo.UpdateBidStatus(ctx, bidId, status)
}
