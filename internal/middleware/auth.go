package middleware

import (
	"context"
	"net/http"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

const authUserKey contextKey = "auth_user"

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's user ID in the request context.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Missing or invalid credentials",
				})
				return
			}

			userID, err := utils.GetUserIDFromClaims(claims)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Missing or invalid credentials",
				})
				return
			}

			ctx := context.WithValue(r.Context(), authUserKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID retrieves the authenticated user's ID from the context. The
// boolean is false on routes that did not pass through RequireAuth.
func GetUserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(authUserKey).(uint)
	return id, ok
}
