package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"goblog/internal/models"
	"goblog/internal/repository"
	"goblog/internal/service"
)

// одно сообщение для несуществующего email и неверного пароля
const invalidCredentialsMsg = "Неверный email или пароль"

// allowedImageTypes - разрешенные типы загружаемых изображений
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterResponse struct {
	User    RegisterUserResponse `json:"user"`
	Message string               `json:"message"`
}

type LoginResponse struct {
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

type UpdateProfileResponse struct {
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

// setSessionCookie ставит httpOnly cookie сессии,
// secure и SameSite=None только в production-окружении
func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.Cfg.TokenDuration),
	}
	if h.Cfg.IsProduction() {
		cookie.SameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, cookie)
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	req := RegisterRequest{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Имя, email и пароль обязательны", http.StatusBadRequest)
		return
	}

	// getting the avatar file
	file, fileHeader, err := r.FormFile("profilePicture")
	if err != nil {
		WriteError(w, "Требуется изображение профиля", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		AvatarName: fileHeader.Filename,
		Avatar:     file,
		AvatarSize: fileHeader.Size,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUploadFailed):
			WriteError(w, "Не удалось загрузить изображение", http.StatusInternalServerError)
		case errors.Is(err, repository.ErrEmailExists):
			WriteError(w, "Пользователь уже существует", http.StatusBadRequest)
		default:
			WriteError(w, "Ошибка при регистрации", http.StatusInternalServerError)
		}
		return
	}

	h.setSessionCookie(w, token)

	// trimmed view, no password and no token in the body
	response := RegisterResponse{
		User: RegisterUserResponse{
			ID:    user.UserID,
			Name:  user.Name,
			Email: user.Email,
		},
		Message: "Регистрация выполнена",
	}

	WriteJSON(w, response, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
			return
		}
	} else {
		req.Email = r.FormValue("email")
		req.Password = r.FormValue("password")
	}

	if req.Email == "" || req.Password == "" {
		WriteError(w, "Email и пароль обязательны", http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// одинаковый ответ, чтобы не раскрывать существование аккаунта
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrWrongPassword) {
			WriteError(w, invalidCredentialsMsg, http.StatusUnauthorized)
			return
		}
		WriteError(w, "Ошибка при входе", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)

	response := LoginResponse{
		User:    user,
		Token:   token,
		Message: "Вход выполнен",
	}

	WriteJSON(w, response, http.StatusOK)
}

// Logout всегда отвечает успехом, даже без активной сессии
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	WriteJSON(w, MessageResponse{Message: "Выход выполнен"}, http.StatusOK)
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	WriteJSON(w, map[string]string{"id": userID}, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	targetUserID := mux.Vars(r)["userId"]

	callerID, ok := r.Context().Value("userID").(string)
	if !ok || callerID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	if name == "" || email == "" {
		WriteError(w, "Имя и email обязательны", http.StatusBadRequest)
		return
	}

	serviceReq := service.UpdateProfileRequest{
		UserID:   targetUserID,
		CallerID: callerID,
		Name:     name,
		Email:    email,
	}

	// avatar is optional
	file, fileHeader, err := r.FormFile("profilePicture")
	if err == nil {
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
			return
		}

		serviceReq.Avatar = file
		serviceReq.AvatarName = fileHeader.Filename
		serviceReq.AvatarSize = fileHeader.Size
	} else if !errors.Is(err, http.ErrMissingFile) {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			WriteError(w, "Нет прав для обновления этого профиля", http.StatusForbidden)
		case errors.Is(err, repository.ErrUserNotFound):
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		case errors.Is(err, repository.ErrEmailExists):
			WriteError(w, "Email уже занят", http.StatusBadRequest)
		case errors.Is(err, service.ErrUploadFailed):
			WriteError(w, "Не удалось загрузить изображение", http.StatusInternalServerError)
		default:
			WriteError(w, "Ошибка при обновлении профиля", http.StatusInternalServerError)
		}
		return
	}

	// переиздание токена из middleware возвращается в теле
	newToken, _ := r.Context().Value("newToken").(string)

	response := UpdateProfileResponse{
		User:    user,
		Token:   newToken,
		Message: "Профиль обновлен",
	}

	WriteJSON(w, response, http.StatusOK)
}
