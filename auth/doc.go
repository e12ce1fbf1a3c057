// Package auth provides a generic JWT token service for gating stream
// endpoints.
//
// The service is parameterized by a custom claims type T, which must
// implement jwt.Claims (typically by embedding jwt.RegisteredClaims).
// StreamClaims is provided for the common case of per-user, per-session
// stream subscriptions.
//
// Usage:
//
//	cfg := &auth.Config{Secret: secret, Issuer: "streamd"}
//	svc, err := auth.NewService(cfg, func() *auth.StreamClaims { return &auth.StreamClaims{} })
//
//	token, err := svc.Issue(&auth.StreamClaims{
//	    UserID:   "user-123",
//	    Patterns: []string{"orders:*"},
//	})
//
//	// Gate routes with the server middleware:
//	gate := middleware.Auth(middleware.AuthConfig{TokenValidator: svc.ValidatorFunc()})
package auth
