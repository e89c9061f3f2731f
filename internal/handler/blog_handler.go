package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"goblog/internal/repository"
	"goblog/internal/service"
)

// parseCategory разбирает поле category - JSON-закодированный список строк
func parseCategory(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}

	var category []string
	if err := json.Unmarshal([]byte(raw), &category); err != nil {
		return nil, errors.New("неверный формат category")
	}

	return category, nil
}

func (h *Handlers) CreateBlog(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")

	category, err := parseCategory(r.FormValue("category"))
	if err != nil {
		WriteError(w, "Неверный формат category", http.StatusBadRequest)
		return
	}

	if title == "" || description == "" || len(category) == 0 {
		WriteError(w, "Все поля обязательны", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Требуется изображение", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	blog, err := h.BlogService.CreateBlog(r.Context(), service.CreateBlogRequest{
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		ImageName:   fileHeader.Filename,
		Image:       file,
		ImageSize:   fileHeader.Size,
	})
	if err != nil {
		if errors.Is(err, service.ErrUploadFailed) {
			WriteError(w, "Не удалось загрузить изображение", http.StatusInternalServerError)
			return
		}
		WriteError(w, "Ошибка при создании блога", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, blog, http.StatusCreated)
}

func (h *Handlers) GetAllUsersBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.BlogService.GetAllBlogs(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			WriteError(w, "Блоги не найдены", http.StatusNotFound)
			return
		}
		WriteError(w, "Ошибка при получении блогов", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, blogs, http.StatusOK)
}

func (h *Handlers) GetUserBlogs(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		WriteError(w, "Требуется ID пользователя", http.StatusBadRequest)
		return
	}

	blogs, err := h.BlogService.GetUserBlogs(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			WriteError(w, "Блоги не найдены, опубликуйте свой первый блог", http.StatusNotFound)
			return
		}
		WriteError(w, "Ошибка при получении блогов", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, blogs, http.StatusOK)
}

func (h *Handlers) GetBlog(w http.ResponseWriter, r *http.Request) {
	blogID := mux.Vars(r)["blogId"]
	if blogID == "" {
		WriteError(w, "Требуется ID блога", http.StatusBadRequest)
		return
	}

	blog, err := h.BlogService.GetBlog(r.Context(), blogID)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			WriteError(w, "Блог не найден", http.StatusNotFound)
			return
		}
		WriteError(w, "Ошибка при получении блога", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, blog, http.StatusOK)
}

// UpdateBlog - частичное обновление, пустые поля не трогают сохраненные значения
func (h *Handlers) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	blogID := mux.Vars(r)["blogId"]

	callerID, ok := r.Context().Value("userID").(string)
	if !ok || callerID == "" {
		WriteError(w, "Требуется ID пользователя", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		return
	}

	category, err := parseCategory(r.FormValue("category"))
	if err != nil {
		WriteError(w, "Неверный формат category", http.StatusBadRequest)
		return
	}

	serviceReq := service.UpdateBlogRequest{
		BlogID:      blogID,
		CallerID:    callerID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    category,
	}

	// image is optional
	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		defer file.Close()

		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
			return
		}

		serviceReq.Image = file
		serviceReq.ImageName = fileHeader.Filename
		serviceReq.ImageSize = fileHeader.Size
	} else if !errors.Is(err, http.ErrMissingFile) {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}

	blog, err := h.BlogService.UpdateBlog(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBlogNotFound):
			WriteError(w, "Блог не найден", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteError(w, "Нет прав для изменения этого блога", http.StatusForbidden)
		case errors.Is(err, service.ErrUploadFailed):
			WriteError(w, "Не удалось загрузить изображение", http.StatusInternalServerError)
		default:
			WriteError(w, "Ошибка при обновлении блога", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, blog, http.StatusOK)
}

func (h *Handlers) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	blogID := mux.Vars(r)["blogId"]
	if blogID == "" {
		WriteError(w, "Требуется ID блога", http.StatusBadRequest)
		return
	}

	callerID, _ := r.Context().Value("userID").(string)

	err := h.BlogService.DeleteBlog(r.Context(), blogID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBlogNotFound):
			WriteError(w, "Блог не найден", http.StatusNotFound)
		case errors.Is(err, service.ErrForbidden):
			WriteError(w, "Нет прав для удаления этого блога", http.StatusForbidden)
		default:
			WriteError(w, "Ошибка при удалении блога", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Блог успешно удален"}, http.StatusOK)
}

func (h *Handlers) LikeBlog(w http.ResponseWriter, r *http.Request) {
	blogID := mux.Vars(r)["blogId"]

	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	blog, err := h.BlogService.ToggleLike(r.Context(), blogID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			WriteError(w, "Блог не найден", http.StatusNotFound)
			return
		}
		WriteError(w, "Ошибка при обновлении лайка", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, blog, http.StatusOK)
}
