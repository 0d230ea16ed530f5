package api

import (
	"net/http"
	"strings"
)

// Protect: Bearer-токен -> userId и роль в контексте запроса
func (h *Handler) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		claims, err := h.tokens.Parse(parts[1])
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		userId, err := parseUUID(claims.UserID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), userId, claims.Role)))
	})
}

// проверка роли
func (h *Handler) authorize(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, role := identity(r)
		for _, allowed := range roles {
			if role == allowed {
				next(w, r)
				return
			}
		}
		respondError(w, http.StatusForbidden, "Role is not authorized to access this route")
	}
}
