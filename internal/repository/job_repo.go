package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/senyabanana/job-bids/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// JobRepository - интерфейс для работы с заказами.
type JobRepository interface {
	GetJobs(ctx context.Context, categories []string) ([]models.Job, error)
	GetJob(ctx context.Context, jobId string) (*models.Job, error)
}

// PostgresJobRepository - реализация JobRepository для базы данных.
type PostgresJobRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresJobRepository создаёт новый экземпляр PostgresJobRepository.
func NewPostgresJobRepository(db *pgxpool.Pool) *PostgresJobRepository {
	return &PostgresJobRepository{DB: db}
}

const jobColumns = `id, title, description, category, deadline, min_price, max_price, buyer_name, buyer_email, buyer_photo`

func scanJob(row pgx.Row) (models.Job, error) {
	var job models.Job
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Category,
		&job.Deadline,
		&job.MinPrice,
		&job.MaxPrice,
		&job.Buyer.Name,
		&job.Buyer.Email,
		&job.Buyer.Photo,
	)
	return job, err
}

// GetJobs возвращает список заказов, при необходимости только из указанных категорий.
func (r *PostgresJobRepository) GetJobs(ctx context.Context, categories []string) ([]models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM job`
	var filters []string
	var args []interface{}
	argIndex := 1

	if len(categories) > 0 {
		filters = append(filters, fmt.Sprintf("category = ANY($%d)", argIndex))
		args = append(args, pq.Array(categories))
		argIndex++
	}

	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// GetJob возвращает заказ по id. Если заказа нет, возвращает pgx.ErrNoRows.
func (r *PostgresJobRepository) GetJob(ctx context.Context, jobId string) (*models.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM job WHERE id = $1`
	job, err := scanJob(r.DB.QueryRow(ctx, query, jobId))
	if err != nil {
		return nil, err
	}
	return &job, nil
}
