package repository

import (
	"context"

	"github.com/senyabanana/job-bids/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BidRepository - интерфейс для работы с предложениями.
type BidRepository interface {
	CreateBid(ctx context.Context, bid models.Bid) (*models.Bid, error)
	GetBidderBids(ctx context.Context, email string) ([]models.Bid, error)
	GetBuyerBids(ctx context.Context, buyerEmail string) ([]models.Bid, error)
	GetBid(ctx context.Context, bidId string) (*models.Bid, error)
	UpdateBidStatus(ctx context.Context, bidId string, status models.Status) (*models.Bid, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

const bidColumns = `id, job_id, title, category, email, buyer_email, price, comment, deadline, status`

func scanBid(row pgx.Row) (models.Bid, error) {
	var bid models.Bid
	err := row.Scan(
		&bid.ID,
		&bid.JobID,
		&bid.Title,
		&bid.Category,
		&bid.Email,
		&bid.BuyerEmail,
		&bid.Price,
		&bid.Comment,
		&bid.Deadline,
		&bid.Status,
	)
	return bid, err
}

// CreateBid создает новое предложение. Повторные предложения от одного исполнителя не отклоняются.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, bid models.Bid) (*models.Bid, error) {
	newBid := bid
	newBid.ID = uuid.New().String()

	insertQuery := `INSERT INTO bid (id, job_id, title, category, email, buyer_email, price, comment, deadline, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.JobID,
		newBid.Title,
		newBid.Category,
		newBid.Email,
		newBid.BuyerEmail,
		newBid.Price,
		newBid.Comment,
		newBid.Deadline,
		newBid.Status)
	if err != nil {
		return nil, err
	}
	return &newBid, nil
}

// GetBidderBids возвращает предложения, отправленные исполнителем.
func (r *PostgresBidRepository) GetBidderBids(ctx context.Context, email string) ([]models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE email = $1 ORDER BY created_at, id`
	return r.queryBids(ctx, query, email)
}

// GetBuyerBids возвращает предложения на заказы покупателя.
func (r *PostgresBidRepository) GetBuyerBids(ctx context.Context, buyerEmail string) ([]models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE buyer_email = $1 ORDER BY created_at, id`
	return r.queryBids(ctx, query, buyerEmail)
}

func (r *PostgresBidRepository) queryBids(ctx context.Context, query string, args ...interface{}) ([]models.Bid, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := []models.Bid{}
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}

// GetBid возвращает предложение по id. Если предложения нет, возвращает pgx.ErrNoRows.
func (r *PostgresBidRepository) GetBid(ctx context.Context, bidId string) (*models.Bid, error) {
	query := `SELECT ` + bidColumns + ` FROM bid WHERE id = $1`
	bid, err := scanBid(r.DB.QueryRow(ctx, query, bidId))
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// UpdateBidStatus меняет статус предложения.
func (r *PostgresBidRepository) UpdateBidStatus(ctx context.Context, bidId string, status models.Status) (*models.Bid, error) {
	updateQuery := `UPDATE bid SET status = $1 WHERE id = $2 RETURNING ` + bidColumns
	bid, err := scanBid(r.DB.QueryRow(ctx, updateQuery, status, bidId))
	if err != nil {
		return nil, err
	}
	return &bid, nil
}
