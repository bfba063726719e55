package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/senyabanana/job-bids/internal/models"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendJSON отправляет ответ 200 с телом в формате JSON
func SendJSON(w http.ResponseWriter, logger *log.Logger, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Println(err)
	}
}

// SendServiceError отправляет ошибку сервиса: ErrorResponse передается как есть,
// остальные ошибки логируются и превращаются в 500 с сообщением fallback.
func SendServiceError(w http.ResponseWriter, logger *log.Logger, err error, fallback string) {
	logger.Println(err)
	if errorResponse, ok := models.AsErrorResponse(err); ok {
		SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
		return
	}
	SendErrorResponse(w, http.StatusInternalServerError, fallback)
}
