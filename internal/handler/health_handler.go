package handlers

import (
	"net/http"
)

// Health проверяет соединение с БД и сообщает число таблиц схемы public.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.HealthCheck(); err != nil {
		WriteError(w, "База данных недоступна", http.StatusServiceUnavailable)
		return
	}

	tables, err := h.DB.CountTables()
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"status": "ok",
		"tables": tables,
	}, http.StatusOK)
}
