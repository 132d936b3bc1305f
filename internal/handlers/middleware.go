package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"listd/internal/apperr"
)

type contextKey string

const userIDKey contextKey = "userID"

// requireAuth verifies the bearer access token and threads the authenticated
// user id through the request context. The acting identity always comes from
// the verified credential, never from request input.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			respondError(w, apperr.Unauthorized("no token provided"))
			return
		}

		userID, err := a.tokens.VerifyAccess(raw)
		if err != nil {
			respondError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID returns the authenticated user id placed by requireAuth.
func callerID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userIDKey).(uuid.UUID)
	return id
}
