package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/senyabanana/job-bids/internal/auth"
	"github.com/senyabanana/job-bids/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBidService struct {
	requester string
	email     string
	buyer     bool
	status    models.Status
	err       error
}

func (f *fakeBidService) CreateBid(_ context.Context, requester string, bid models.Bid) (*models.Bid, error) {
	f.requester = requester
	if f.err != nil {
		return nil, f.err
	}
	bid.ID = "new"
	return &bid, nil
}

func (f *fakeBidService) GetUserBids(_ context.Context, requester, email string, buyer bool) ([]models.Bid, error) {
	f.requester, f.email, f.buyer = requester, email, buyer
	if f.err != nil {
		return nil, f.err
	}
	return []models.Bid{{ID: "1", Email: email}}, nil
}

func (f *fakeBidService) UpdateBidStatus(_ context.Context, requester, bidId string, status models.Status) (*models.Bid, error) {
	f.requester, f.status = requester, status
	if f.err != nil {
		return nil, f.err
	}
	return &models.Bid{ID: bidId, Status: status}, nil
}

type fakeIssuer struct{}

func (fakeIssuer) IssueToken(email string) (string, error) { return "token-for-" + email, nil }
func (fakeIssuer) TTL() time.Duration                      { return time.Hour }

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func decodeReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Message
}

func TestBidHandler_CreateBid(t *testing.T) {
	svc := &fakeBidService{}
	h := NewBidHandler(svc, discardLogger(), time.Second)

	req := httptest.NewRequest(http.MethodPost, "/bids", strings.NewReader(`{"jobId":"job-1","price":400}`))
	req = req.WithContext(auth.WithEmail(req.Context(), "u@x.com"))
	rec := httptest.NewRecorder()
	h.CreateBid(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u@x.com", svc.requester)

	var bid models.Bid
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bid))
	assert.Equal(t, "new", bid.ID)
	assert.Equal(t, 400.0, bid.Price)
}

func TestBidHandler_CreateBidBadBody(t *testing.T) {
	h := NewBidHandler(&fakeBidService{}, discardLogger(), time.Second)

	rec := httptest.NewRecorder()
	h.CreateBid(rec, httptest.NewRequest(http.MethodPost, "/bids", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeReason(t, rec))
}

func TestBidHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantReason string
	}{
		{"error response", &models.ErrorResponse{StatusCode: http.StatusForbidden, Message: "forbidden"}, http.StatusForbidden, "forbidden"},
		{"wrapped error response", errWrap(&models.ErrorResponse{StatusCode: http.StatusNotFound, Message: "bid not found"}), http.StatusNotFound, "bid not found"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "failed to retrieve bids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBidHandler(&fakeBidService{err: tt.err}, discardLogger(), time.Second)

			req := httptest.NewRequest(http.MethodGet, "/bids/u@x.com", nil)
			req.SetPathValue("email", "u@x.com")
			rec := httptest.NewRecorder()
			h.GetUserBids(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantReason, decodeReason(t, rec))
		})
	}
}

func errWrap(err error) error {
	return errors.Join(errors.New("service"), err)
}

func TestBidHandler_GetUserBidsBuyerQuery(t *testing.T) {
	svc := &fakeBidService{}
	h := NewBidHandler(svc, discardLogger(), time.Second)

	req := httptest.NewRequest(http.MethodGet, "/bids/b@x.com?buyer=true", nil)
	req.SetPathValue("email", "b@x.com")
	req = req.WithContext(auth.WithEmail(req.Context(), "b@x.com"))
	rec := httptest.NewRecorder()
	h.GetUserBids(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "b@x.com", svc.email)
	assert.True(t, svc.buyer)
}

func TestBidHandler_UpdateBidStatus(t *testing.T) {
	svc := &fakeBidService{}
	h := NewBidHandler(svc, discardLogger(), time.Second)

	req := httptest.NewRequest(http.MethodPatch, "/bid-status-update/42", strings.NewReader(`{"status":"In Progress"}`))
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.UpdateBidStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.InProgress, svc.status)
}

func TestBidHandler_UpdateBidStatusUnknownStatus(t *testing.T) {
	svc := &fakeBidService{}
	h := NewBidHandler(svc, discardLogger(), time.Second)

	req := httptest.NewRequest(http.MethodPatch, "/bid-status-update/42", strings.NewReader(`{"status":"Archived"}`))
	req.SetPathValue("id", "42")
	rec := httptest.NewRecorder()
	h.UpdateBidStatus(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `unknown bid status "Archived"`, decodeReason(t, rec))
	assert.Empty(t, svc.status, "service is not called")
}

func TestAuthHandler_LoginSetsCookie(t *testing.T) {
	h := NewAuthHandler(fakeIssuer{}, discardLogger(), true)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":" u@x.com "}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "token-for-u@x.com", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookies[0].SameSite)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestAuthHandler_LoginRejectsBadEmail(t *testing.T) {
	h := NewAuthHandler(fakeIssuer{}, discardLogger(), false)

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"nope"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandler_LogoutExpiresCookie(t *testing.T) {
	h := NewAuthHandler(fakeIssuer{}, discardLogger(), false)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
