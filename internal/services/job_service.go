package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/senyabanana/job-bids/internal/models"
	"github.com/senyabanana/job-bids/internal/repository"

	"github.com/jackc/pgx/v5"
)

type JobService struct {
	Repo repository.JobRepository
}

// NewJobService создает новый экземпляр JobService.
func NewJobService(repo repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// GetJobs возвращает заказы. Пустые категории отбрасываются.
func (s *JobService) GetJobs(ctx context.Context, categories []string) ([]models.Job, error) {
	var filter []string
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			filter = append(filter, c)
		}
	}
	return s.Repo.GetJobs(ctx, filter)
}

// GetJob возвращает заказ по id.
func (s *JobService) GetJob(ctx context.Context, jobId string) (*models.Job, error) {
	if jobId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "job id is required")
	}
	job, err := s.Repo.GetJob(ctx, jobId)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NewErrorResponse(http.StatusNotFound, "job not found")
	}
	return job, err
}
