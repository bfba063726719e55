package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/senyabanana/job-bids/internal/models"
)

// ListJobs возвращает заказы, при необходимости только из указанных категорий.
func (c *Client) ListJobs(ctx context.Context, categories ...string) ([]models.Job, error) {
	var query url.Values
	if len(categories) > 0 {
		query = url.Values{"category": categories}
	}
	var jobs []models.Job
	if _, err := c.do(ctx, http.MethodGet, "/jobs", query, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob возвращает заказ по id.
func (c *Client) GetJob(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if _, err := c.do(ctx, http.MethodGet, "/job/"+url.PathEscape(id), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateBid отправляет новое предложение.
func (c *Client) CreateBid(ctx context.Context, bid models.Bid) (*models.Bid, error) {
	var created models.Bid
	if _, err := c.do(ctx, http.MethodPost, "/bids", nil, bid, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// MyBids возвращает предложения, отправленные пользователем email.
func (c *Client) MyBids(ctx context.Context, email string) ([]models.Bid, error) {
	var bids []models.Bid
	if _, err := c.do(ctx, http.MethodGet, "/bids/"+url.PathEscape(email), nil, nil, &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

// BidRequests возвращает предложения на заказы пользователя email.
func (c *Client) BidRequests(ctx context.Context, email string) ([]models.Bid, error) {
	var bids []models.Bid
	query := url.Values{"buyer": {"true"}}
	if _, err := c.do(ctx, http.MethodGet, "/bids/"+url.PathEscape(email), query, nil, &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

// UpdateBidStatus меняет статус предложения. Тело ответа не используется.
func (c *Client) UpdateBidStatus(ctx context.Context, id string, status models.Status) error {
	body := models.BidStatusUpdate{Status: status}
	_, err := c.do(ctx, http.MethodPatch, "/bid-status-update/"+url.PathEscape(id), nil, body, nil)
	return err
}

// Login запрашивает токен для email и возвращает его значение.
func (c *Client) Login(ctx context.Context, email string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/jwt", nil, models.LoginRequest{Email: email}, nil)
	if err != nil {
		return "", err
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == TokenCookie && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", fmt.Errorf("login response has no %s cookie", TokenCookie)
}

// Logout просит сервер сбросить cookie сессии.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/logout", nil, nil, nil)
	return err
}
