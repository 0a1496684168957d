package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	// лимит тела запроса: файл не сохраняется, если он больше допустимого
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+512*1024)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Файл слишком большой, максимум 5 МБ", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Выберите файл изображения для загрузки", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := h.UploadService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, image, http.StatusOK)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	filename := mux.Vars(r)["filename"]

	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		WriteError(w, "Неверное имя файла", http.StatusBadRequest)
		return
	}

	if err := h.UploadService.Delete(r.Context(), filename); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, struct{}{}, http.StatusOK)
}

func (h *Handlers) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.UploadService.List(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, images, http.StatusOK)
}
