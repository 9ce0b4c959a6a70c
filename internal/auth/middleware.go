package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserIDKey = contextKey("userID")
	tokenKey  = contextKey("token")
)

// Require rejects requests without a valid bearer token.
func Require(svc *Service, log logrus.FieldLogger, next http.Handler) http.Handler {
	return middleware(svc, log, true, next)
}

// Optional lets anonymous requests through but still rejects a bad token.
func Optional(svc *Service, log logrus.FieldLogger, next http.Handler) http.Handler {
	return middleware(svc, log, false, next)
}

func middleware(svc *Service, log logrus.FieldLogger, required bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			if required {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "invalid token format", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := svc.ParseToken(r.Context(), tokenStr)
		if errors.Is(err, ErrInvalidToken) {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if err != nil {
			log.WithError(err).Error("parse token")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, tokenKey, tokenStr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

func tokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
