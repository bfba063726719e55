package router

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/senyabanana/job-bids/internal/auth"
	"github.com/senyabanana/job-bids/internal/handlers"
	"github.com/senyabanana/job-bids/internal/utils"
)

// TokenParser проверяет токен из cookie.
type TokenParser interface {
	ParseToken(tokenString string) (*auth.Claims, error)
}

// Handlers - набор обработчиков для маршрутов API.
type Handlers struct {
	Auth *handlers.AuthHandler
	Jobs *handlers.JobHandler
	Bids *handlers.BidHandler
}

func InitRoutes(h Handlers, tokens TokenParser, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	private := RequireAuth(tokens)

	mux.HandleFunc("GET /api/ping", handlers.PingHandler)
	mux.HandleFunc("POST /jwt", h.Auth.Login)
	mux.HandleFunc("GET /logout", h.Auth.Logout)

	mux.HandleFunc("GET /jobs", h.Jobs.GetJobs)
	mux.HandleFunc("GET /job/{id}", h.Jobs.GetJob)

	mux.Handle("POST /bids", private(http.HandlerFunc(h.Bids.CreateBid)))
	mux.Handle("GET /bids/{email}", private(http.HandlerFunc(h.Bids.GetUserBids)))
	mux.Handle("PATCH /bid-status-update/{id}", private(http.HandlerFunc(h.Bids.UpdateBidStatus)))

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(mux)
}

// RequireAuth пропускает запрос дальше только с действительным токеном в cookie
// и кладет почту пользователя в контекст запроса.
func RequireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("token")
			if err != nil || cookie.Value == "" {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "unauthorized access")
				return
			}
			claims, err := tokens.ParseToken(cookie.Value)
			if err != nil {
				utils.SendErrorResponse(w, http.StatusUnauthorized, "unauthorized access")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithEmail(r.Context(), claims.Email)))
		})
	}
}
