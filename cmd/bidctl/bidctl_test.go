package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senyabanana/job-bids/internal/models"
)

func init() {
	color.NoColor = true
}

// marketplace - тестовый сервер с одним заказом и одним предложением.
type marketplace struct {
	mu      sync.Mutex
	job     models.Job
	bids    []models.Bid
	posted  []models.Bid
	patched []models.BidStatusUpdate
	expired bool
	// failReloads отвечает 500 на каждый список предложений после первого.
	failReloads bool
	lists       int
}

func newMarketplace() *marketplace {
	return &marketplace{
		job: models.Job{
			ID:       "job-1",
			Title:    "Landing page",
			Category: "Web Development",
			Deadline: time.Now().Add(72 * time.Hour).Truncate(24 * time.Hour),
			MinPrice: 100,
			MaxPrice: 500,
			Buyer:    models.Buyer{Name: "Buyer", Email: "b@x.com"},
		},
		bids: []models.Bid{{
			ID: "42", JobID: "job-1", Title: "Landing page", Category: "Web Development",
			Email: "u@x.com", BuyerEmail: "b@x.com", Price: 400, Status: models.Pending,
			Deadline: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		}},
	}
}

func (m *marketplace) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /jwt", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "t-1", HttpOnly: true})
		w.Write([]byte(`{"success":true}`))
	})
	mux.HandleFunc("GET /jobs", func(w http.ResponseWriter, r *http.Request) {
		m.write(w, []models.Job{m.job})
	})
	mux.HandleFunc("GET /job/{id}", func(w http.ResponseWriter, r *http.Request) {
		m.write(w, m.job)
	})
	mux.HandleFunc("POST /bids", func(w http.ResponseWriter, r *http.Request) {
		var bid models.Bid
		_ = json.NewDecoder(r.Body).Decode(&bid)
		m.mu.Lock()
		m.posted = append(m.posted, bid)
		m.mu.Unlock()
		m.write(w, bid)
	})
	mux.HandleFunc("GET /bids/{email}", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		expired := m.expired
		m.lists++
		failed := m.failReloads && m.lists > 1
		m.mu.Unlock()
		if failed {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"reason":"db down"}`))
			return
		}
		if expired {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"reason":"unauthorized access"}`))
			return
		}
		m.write(w, m.bids)
	})
	mux.HandleFunc("PATCH /bid-status-update/{id}", func(w http.ResponseWriter, r *http.Request) {
		var update models.BidStatusUpdate
		_ = json.NewDecoder(r.Body).Decode(&update)
		m.mu.Lock()
		m.patched = append(m.patched, update)
		for i := range m.bids {
			if m.bids[i].ID == r.PathValue("id") {
				m.bids[i].Status = update.Status
			}
		}
		m.mu.Unlock()
		w.Write([]byte(`{}`))
	})
	return mux
}

func (m *marketplace) write(w http.ResponseWriter, body any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func run(tb testing.TB, srv *httptest.Server, sessionPath string, args ...string) (string, error) {
	tb.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--api-url", srv.URL, "--session", sessionPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func signedIn(tb testing.TB, srv *httptest.Server, email string) string {
	tb.Helper()
	sessionPath := filepath.Join(tb.TempDir(), "session.json")
	_, err := run(tb, srv, sessionPath, "login", "--email", email)
	require.NoError(tb, err)
	return sessionPath
}

func TestLoginAndJobs(t *testing.T) {
	srv := httptest.NewServer(newMarketplace().handler())
	defer srv.Close()

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	out, err := run(t, srv, sessionPath, "login", "--email", "u@x.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as u@x.com")

	data, err := os.ReadFile(sessionPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"u@x.com","token":"t-1"}`, string(data))

	out, err = run(t, srv, sessionPath, "jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "Landing page")
	assert.Contains(t, out, "$100 - $500")
}

func TestBidOnOwnJobIsRejected(t *testing.T) {
	m := newMarketplace()
	srv := httptest.NewServer(m.handler())
	defer srv.Close()
	sessionPath := signedIn(t, srv, "b@x.com")

	out, err := run(t, srv, sessionPath, "bid", "job-1", "--price", "400")
	require.Error(t, err)
	assert.Contains(t, out, "You are not permitted to bid on your own job")
	assert.Empty(t, m.posted)
}

func TestBidPlacedAndMyBidsShown(t *testing.T) {
	m := newMarketplace()
	srv := httptest.NewServer(m.handler())
	defer srv.Close()
	sessionPath := signedIn(t, srv, "u@x.com")

	out, err := run(t, srv, sessionPath, "bid", "job-1", "--price", "450", "--comment", "fast")
	require.NoError(t, err)
	assert.Contains(t, out, "Bid placed successfully!")
	assert.Contains(t, out, "My Bids (1 Bid)")

	require.Len(t, m.posted, 1)
	assert.Equal(t, 450.0, m.posted[0].Price)
	assert.Equal(t, models.Pending, m.posted[0].Status)
	assert.True(t, m.posted[0].Deadline.Equal(m.job.Deadline))
}

func TestBuyerAcceptsBid(t *testing.T) {
	m := newMarketplace()
	srv := httptest.NewServer(m.handler())
	defer srv.Close()
	sessionPath := signedIn(t, srv, "b@x.com")

	out, err := run(t, srv, sessionPath, "bid-requests", "accept", "42")
	require.NoError(t, err)
	assert.Equal(t, []models.BidStatusUpdate{{Status: models.InProgress}}, m.patched)
	assert.Contains(t, out, "Bid Requests (1 Requests)")
	assert.Contains(t, out, "In Progress")
}

func TestBidderCannotCompletePendingBid(t *testing.T) {
	m := newMarketplace()
	srv := httptest.NewServer(m.handler())
	defer srv.Close()
	sessionPath := signedIn(t, srv, "u@x.com")

	out, err := run(t, srv, sessionPath, "my-bids", "complete", "42")
	require.Error(t, err)
	assert.NotContains(t, out, "only bids in progress can be updated by the bidder")
	assert.Empty(t, m.patched)

	out, err = run(t, srv, sessionPath, "--verbose", "my-bids", "complete", "42")
	require.Error(t, err)
	assert.Contains(t, out, "not allowed: only bids in progress can be updated by the bidder")
	assert.Empty(t, m.patched)
}

func TestReloadFailureAfterStatusChangeIsShown(t *testing.T) {
	m := newMarketplace()
	m.failReloads = true
	srv := httptest.NewServer(m.handler())
	defer srv.Close()
	sessionPath := signedIn(t, srv, "b@x.com")

	out, err := run(t, srv, sessionPath, "bid-requests", "accept", "42")
	require.Error(t, err)
	assert.Equal(t, []models.BidStatusUpdate{{Status: models.InProgress}}, m.patched)
	assert.Contains(t, out, "Bid updated, but the list could not be reloaded")
	assert.Contains(t, out, "db down")
}

func TestExpiredSessionSignsOut(t *testing.T) {
	m := newMarketplace()
	m.expired = true
	srv := httptest.NewServer(m.handler())
	defer srv.Close()
	sessionPath := signedIn(t, srv, "u@x.com")

	out, err := run(t, srv, sessionPath, "my-bids")
	require.Error(t, err)
	assert.Contains(t, out, "bidctl login --email")

	_, statErr := os.Stat(sessionPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCommandsNeedSession(t *testing.T) {
	srv := httptest.NewServer(newMarketplace().handler())
	defer srv.Close()

	_, err := run(t, srv, filepath.Join(t.TempDir(), "session.json"), "my-bids")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}
