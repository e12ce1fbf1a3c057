package middleware

import (
	"context"
	"net/http"
	"strings"
)

// claimsKey is the context key under which validated claims are stored.
type claimsKey struct{}

// AuthConfig configures the bearer token authentication middleware.
type AuthConfig struct {
	// TokenValidator validates a token string and returns the claims.
	TokenValidator func(token string) (map[string]interface{}, error)
	// SkipPaths are URL path prefixes that bypass authentication.
	SkipPaths []string
	// QueryTokenParam names a query parameter accepted as a token carrier
	// when no Authorization header is present. EventSource cannot set
	// request headers, so browser SSE consumers pass tokens this way.
	// Empty disables the fallback.
	QueryTokenParam string
}

// Auth returns middleware that validates Bearer tokens using the configured
// TokenValidator. Validated claims are stored on the request context and can
// be read with ClaimsFromContext.
func Auth(cfg AuthConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			for _, skip := range cfg.SkipPaths {
				if strings.HasPrefix(path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			token, errMsg := extractToken(r, cfg.QueryTokenParam)
			if errMsg != "" {
				writeJSONError(w, http.StatusUnauthorized, errMsg)
				return
			}

			claims, err := cfg.TokenValidator(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls a bearer token from the Authorization header or, when
// configured, the query string. An Authorization header always takes
// precedence, even when malformed.
func extractToken(r *http.Request, queryParam string) (token, errMsg string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", "Invalid authorization header format"
		}
		return parts[1], ""
	}
	if queryParam != "" {
		if t := r.URL.Query().Get(queryParam); t != "" {
			return t, ""
		}
	}
	return "", "Authorization header required"
}

// ClaimsFromContext returns the claims stored by Auth, or false if the
// request did not pass through the middleware.
func ClaimsFromContext(ctx context.Context) (map[string]interface{}, bool) {
	claims, ok := ctx.Value(claimsKey{}).(map[string]interface{})
	return claims, ok
}
