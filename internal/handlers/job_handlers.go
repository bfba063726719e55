package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/senyabanana/job-bids/internal/models"
	"github.com/senyabanana/job-bids/internal/utils"
)

// JobService - операции с заказами, нужные обработчикам.
type JobService interface {
	GetJobs(ctx context.Context, categories []string) ([]models.Job, error)
	GetJob(ctx context.Context, jobId string) (*models.Job, error)
}

// JobHandler - структура для обработки HTTP-запросов.
type JobHandler struct {
	Service JobService
	Logger  *log.Logger
	Timeout time.Duration
}

// NewJobHandler создает новый экземпляр JobHandler.
func NewJobHandler(service JobService, logger *log.Logger, timeout time.Duration) *JobHandler {
	return &JobHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetJobs обрабатывает запросы для получения списка заказов.
func (h *JobHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	jobs, err := h.Service.GetJobs(ctx, r.URL.Query()["category"])
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to retrieve jobs")
		return
	}

	utils.SendJSON(w, h.Logger, jobs)
}

// GetJob обрабатывает запросы для получения заказа.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	job, err := h.Service.GetJob(ctx, r.PathValue("id"))
	if err != nil {
		utils.SendServiceError(w, h.Logger, err, "failed to retrieve job")
		return
	}

	utils.SendJSON(w, h.Logger, job)
}
