package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

const adminTokenHeader = "X-Admin-Token"

// AdminAuth проверяет статический админ-токен в заголовке X-Admin-Token.
// Сравнение константное по времени
func AdminAuth(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminTokenHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
