package auth

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// StreamClaims is a ready-made claims type for gating stream endpoints.
// The user and session fields mirror the metadata attached to SSE clients,
// and Patterns lists the broadcast patterns the token may subscribe to.
type StreamClaims struct {
	gojwt.RegisteredClaims
	UserID    string   `json:"user_id,omitempty"`
	SessionID string   `json:"session_id,omitempty"`
	Patterns  []string `json:"patterns,omitempty"`
}

// SetDefaults stamps standard time, issuer, and audience claims without
// overwriting values the caller already set. Invoked by Service.Issue.
func (c *StreamClaims) SetDefaults(now time.Time, ttl time.Duration, issuer string, audience []string) {
	if c.IssuedAt == nil {
		c.IssuedAt = gojwt.NewNumericDate(now)
	}
	if c.ExpiresAt == nil {
		c.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	}
	if c.Issuer == "" {
		c.Issuer = issuer
	}
	if len(c.Audience) == 0 && len(audience) > 0 {
		c.Audience = gojwt.ClaimStrings(audience)
	}
}
