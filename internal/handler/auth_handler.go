package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"unicode/utf8"

	"blogCPT/internal/service"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	// валидация до любого обращения к БД
	details := map[string]string{}

	if utf8.RuneCountInString(req.Username) < 3 {
		details["username"] = "не менее 3 символов"
	} else if !usernamePattern.MatchString(req.Username) {
		details["username"] = "только буквы и цифры"
	}

	if !emailPattern.MatchString(req.Email) {
		details["email"] = "неверный формат email"
	}

	if utf8.RuneCountInString(req.Password) < 6 {
		details["password"] = "не менее 6 символов"
	}

	if len(details) > 0 {
		WriteErrorDetails(w, "Ошибка валидации", details, http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	user, token, err := h.AuthService.Register(r.Context(), serviceReq)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	// forming the response
	response := AuthResponse{
		User: UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
		Token: token,
	}

	WriteSuccess(w, response, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, "Укажите email и пароль", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверный формат email", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	// forming the response
	response := AuthResponse{
		User: UserResponse{
			UserID:   user.UserID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
		Token: token,
	}

	WriteSuccess(w, response, http.StatusOK)
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	response := UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}

	WriteSuccess(w, response, http.StatusOK)
}
