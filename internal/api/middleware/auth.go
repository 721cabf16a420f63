package middleware

import (
	"context"
	"net/http"

	"github.com/avdeevsv/GBS-QueueService/internal/api/handlers"
)

type contextKey string

const adminIDKey contextKey = "adminID"

// AdminIDHeader заголовок, которым витрина передает идентификатор администратора
const AdminIDHeader = "X-Admin-ID"

// Auth middleware проверяет наличие заголовка X-Admin-ID и кладет его
// значение в контекст запроса. Проверка подлинности выполняется выше по
// цепочке (API gateway); здесь только шим.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminID := r.Header.Get(AdminIDHeader)
		if adminID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+AdminIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID извлекает идентификатор администратора из контекста запроса
func GetAdminID(r *http.Request) (string, bool) {
	adminID, ok := r.Context().Value(adminIDKey).(string)
	return adminID, ok && adminID != ""
}
