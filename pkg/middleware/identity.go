package middleware

import (
	"net/http"

	"showtime-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserIDHeader carries the authenticated principal. Authentication and
// token verification happen at the gateway in front of this service;
// here we only consume the asserted identity.
const UserIDHeader = "X-User-ID"

// Identity middleware extracts the authenticated user id and puts it on
// the request context. Requests without a valid id are rejected.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(UserIDHeader)
			if header == "" {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			userID, err := uuid.Parse(header)
			if err != nil {
				logger.Warn("Malformed user id header",
					zap.String("header", header),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid user identity")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
