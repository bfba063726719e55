package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/senyabanana/job-bids/internal/models"
	"github.com/senyabanana/job-bids/internal/utils"
)

// TokenIssuer выдает токены сессии.
type TokenIssuer interface {
	IssueToken(email string) (string, error)
	TTL() time.Duration
}

// AuthHandler выдает и сбрасывает cookie сессии.
type AuthHandler struct {
	Issuer       TokenIssuer
	Logger       *log.Logger
	CookieSecure bool
	validate     *validator.Validate
}

// NewAuthHandler создает новый экземпляр AuthHandler.
func NewAuthHandler(issuer TokenIssuer, logger *log.Logger, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		Issuer:       issuer,
		Logger:       logger,
		CookieSecure: cookieSecure,
		validate:     validator.New(),
	}
}

// Login выдает cookie с токеном для почты из тела запроса.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := h.validate.Struct(req); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "valid email is required")
		return
	}

	token, err := h.Issuer.IssueToken(req.Email)
	if err != nil {
		h.Logger.Println(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	http.SetCookie(w, h.cookie(token, int(h.Issuer.TTL().Seconds())))
	utils.SendJSON(w, h.Logger, map[string]bool{"success": true})
}

// Logout сбрасывает cookie с токеном.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, h.cookie("", -1))
	utils.SendJSON(w, h.Logger, map[string]bool{"success": true})
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if h.CookieSecure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     "token",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: sameSite,
	}
}
