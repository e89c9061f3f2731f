package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"goblog/internal/service"
)

type Middleware func(http.Handler) http.Handler

// extractToken ищет токен в cookie, затем в Authorization, затем в заголовке token
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 {
			return parts[1]
		}
	}

	if tokenHeader := r.Header.Get("token"); tokenHeader != "" {
		return strings.Split(tokenHeader, " ")[0]
	}

	return ""
}

// RequireAuth проверяет сессионный токен и кладет id пользователя в контекст.
// На каждый аутентифицированный запрос выпускается свежий токен: cookie
// обновляется сразу, а значение дополнительно доступно хендлерам через контекст.
func (h *Handlers) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			WriteError(w, "Требуется авторизация. Токен не предоставлен", http.StatusUnauthorized)
			return
		}

		userID, err := h.AuthService.ValidateToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				WriteError(w, "Сессия истекла. Войдите заново", http.StatusUnauthorized)
			case errors.Is(err, service.ErrTokenInvalid):
				WriteError(w, "Недействительный токен", http.StatusForbidden)
			default:
				WriteError(w, "Внутренняя ошибка аутентификации", http.StatusInternalServerError)
			}
			return
		}

		// sliding expiry
		newToken, err := h.AuthService.GenerateToken(userID)
		if err != nil {
			WriteError(w, "Внутренняя ошибка аутентификации", http.StatusInternalServerError)
			return
		}
		h.setSessionCookie(w, newToken)

		ctx := context.WithValue(r.Context(), "userID", userID)
		ctx = context.WithValue(ctx, "newToken", newToken)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// CORSMiddleware отдает CORS-заголовки только для разрешенных origin из конфига
func CORSMiddleware(allowedOrigins []string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, token")
					break
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("Method: %s, URL: %s, Duration: %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
