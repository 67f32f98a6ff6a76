package middleware

import (
	"net/http"

	"github.com/etrackhq/etrack-backend-go/internal/domain/employee"
	"github.com/etrackhq/etrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireManager restricts a route to employees with the manager role.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, employee.ErrManagerAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != string(employee.RoleManager) {
			response.HandleError(w, employee.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
