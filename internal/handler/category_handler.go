package handlers

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"
)

const maxCategoryNameLength = 50

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.CategoryService.ListCategories(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, categories, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required,max=50"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	details := map[string]string{}
	if req.Name == "" {
		details["name"] = "обязательное поле"
	} else if utf8.RuneCountInString(req.Name) > maxCategoryNameLength {
		details["name"] = "не более 50 символов"
	}

	if len(details) > 0 {
		WriteErrorDetails(w, "Ошибка валидации", details, http.StatusBadRequest)
		return
	}

	category, err := h.CategoryService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, category, http.StatusCreated)
}
