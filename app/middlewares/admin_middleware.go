package middlewares

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
)

// AdminAuthMiddleware runs after AuthMiddleware. The token must carry the
// admin role and the user it names must still be an admin.
func AdminAuthMiddleware(userRepo repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := helpers.ClaimsFromRequest(r)
			if claims == nil {
				helpers.RespondJSON(w, http.StatusUnauthorized, map[string]string{"error": "No token provided"})
				return
			}
			if !claims.IsAdmin() {
				logger.WithCtx(r.Context()).Warn("AdminAuthMiddleware: non-admin token", "user_id", claims.ID)
				helpers.RespondJSON(w, http.StatusForbidden, map[string]string{"error": "Admin access required"})
				return
			}

			user, err := userRepo.FindByID(r.Context(), claims.ID)
			if err != nil {
				logger.WithCtx(r.Context()).Error("AdminAuthMiddleware: user lookup failed", "user_id", claims.ID, "error", err)
				helpers.RespondJSON(w, http.StatusInternalServerError, map[string]string{"error": "Server error"})
				return
			}
			if user == nil || user.Role != models.RoleAdmin {
				logger.WithCtx(r.Context()).Warn("AdminAuthMiddleware: admin role revoked", "user_id", claims.ID)
				helpers.RespondJSON(w, http.StatusForbidden, map[string]string{"error": "Admin access required"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
