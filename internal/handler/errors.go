package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blogCPT/internal/apperrors"
)

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type successResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type errorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(successResponse{Success: true, Data: data})
}

func WriteSuccessPage(w http.ResponseWriter, data interface{}, pagination Pagination, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(successResponse{Success: true, Data: data, Pagination: &pagination})
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{Success: false, Error: message})
}

func WriteErrorDetails(w http.ResponseWriter, message string, details map[string]string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(errorResponse{Success: false, Error: message, Details: details})
}

// WriteAppError переводит класс ошибки в HTTP-статус. Неклассифицированные
// ошибки логируются, клиенту уходит общий текст без внутренних деталей.
func WriteAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		log.Printf("внутренняя ошибка: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		WriteErrorDetails(w, appErr.Message, appErr.Details, http.StatusBadRequest)
	case apperrors.KindAuthentication:
		WriteError(w, appErr.Message, http.StatusUnauthorized)
	case apperrors.KindAuthorization:
		WriteError(w, appErr.Message, http.StatusForbidden)
	case apperrors.KindNotFound:
		WriteError(w, appErr.Message, http.StatusNotFound)
	case apperrors.KindConflict:
		WriteErrorDetails(w, appErr.Message, appErr.Details, http.StatusConflict)
	default:
		log.Printf("внутренняя ошибка: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
