package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ik-portal/hr-backend/internal/domain/user"
	"github.com/ik-portal/hr-backend/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified access token. It runs
// after jwtauth.Verifier, which has already put the token on the context.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		if token == nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
