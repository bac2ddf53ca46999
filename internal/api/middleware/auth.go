package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

type sessionContextKey struct{}

// Auth middleware аутентификации по заголовкам gateway
// Собирает domain.Session из X-User-ID и X-User-Role и кладет её в контекст
// Роль по умолчанию - клиент
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(headerUserID)
		if userIDStr == "" {
			http.Error(w, "X-User-ID header is required", http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, "invalid X-User-ID header", http.StatusUnauthorized)
			return
		}

		role, err := domain.ParseRole(r.Header.Get(headerUserRole))
		if err != nil {
			http.Error(w, "invalid X-User-Role header", http.StatusUnauthorized)
			return
		}

		session := domain.Session{UserID: userID, Role: role}
		ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext возвращает сессию пользователя из контекста запроса
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(domain.Session)
	return session, ok
}
