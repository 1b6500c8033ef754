package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/EVCharge-BookingService/internal/api/handlers"
)

// userIDHeader заголовок с ID аутентифицированного пользователя.
// Заголовок проставляет API Gateway после проверки токена в AuthService
const userIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth middleware аутентификации: извлекает ID пользователя из заголовка
// и кладёт его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get(userIDHeader)
		if rawUserID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+userIDHeader)
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+userIDHeader)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID извлекает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
