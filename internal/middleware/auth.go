// Package middleware provides the HTTP middleware shared by the Lambda and
// local entrypoints: authentication and structured request logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/pkg/api"
)

// contextKey's empty-struct style avoids collisions with other packages'
// context values.
type contextKey struct {
	name string
}

var userIDKey = contextKey{"userID"}

// UserID extracts the authenticated user id from the request context.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// WithUserID returns a context carrying the authenticated user id. Exposed
// for handler tests.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// LambdaAuthenticator trusts the verified identity API Gateway attached to
// the proxied request. Credential checking happened upstream; the core only
// needs the opaque user id from the authorizer claims.
func LambdaAuthenticator(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			proxyCtx, ok := core.GetAPIGatewayV2ContextFromContext(r.Context())
			if !ok {
				logger.Error("proxy request context missing from request")
				api.Error(w, http.StatusInternalServerError, "An internal error occurred")
				return
			}

			userID := authorizerSubject(proxyCtx.Authorizer)
			if userID == "" {
				api.Error(w, http.StatusUnauthorized, "User ID not found in request context")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// JWTAuthenticator validates HS256 bearer tokens for the local development
// server, where no API Gateway sits in front. The secret is read through a
// function so configuration reloads take effect without a restart.
func JWTAuthenticator(secret func() string, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				api.Error(w, http.StatusUnauthorized, "Missing bearer token")
				return
			}

			token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
				return []byte(secret()), nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				logger.Debug("token validation failed", zap.Error(err))
				api.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			sub, err := token.Claims.GetSubject()
			if err != nil || sub == "" {
				api.Error(w, http.StatusUnauthorized, "Token has no subject")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), sub)))
		})
	}
}

// authorizerSubject digs the subject claim out of whichever authorizer type
// the API Gateway route is configured with.
func authorizerSubject(auth *events.APIGatewayV2HTTPRequestContextAuthorizerDescription) string {
	if auth == nil {
		return ""
	}
	if sub, ok := auth.Lambda["sub"].(string); ok && sub != "" {
		return sub
	}
	if auth.JWT != nil {
		if sub, ok := auth.JWT.Claims["sub"]; ok {
			return sub
		}
	}
	return ""
}
