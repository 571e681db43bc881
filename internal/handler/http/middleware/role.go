package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ik-portal/hr-backend/internal/domain/user"
	"github.com/ik-portal/hr-backend/internal/handler/http/response"
)

// RequirePermission allows the request when the role claim grants permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			if !user.HasPermission(user.Role(role), permission) {
				response.HandleError(w, user.ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
