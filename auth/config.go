package auth

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/skillsenselab/streamkit/validation"
)

// SigningMethod defines supported JWT signing algorithms.
// Stream gates are issued and verified by the same service, so only
// symmetric HMAC methods are supported.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the JWT token service.
type Config struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`

	// Issuer is the "iss" claim, enforced on Parse when set.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// Audience is the "aud" claim. When set, Parse requires the first entry.
	Audience []string `yaml:"audience" mapstructure:"audience"`

	// TokenTTL is the lifetime stamped on tokens by Issue (default: 15m).
	TokenTTL time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TokenTTL == 0 {
		c.TokenTTL = 15 * time.Minute
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	v := validation.New().
		Required("auth.secret", c.Secret).
		OneOf("auth.method", string(c.Method), []string{string(HS256), string(HS384), string(HS512)})
	if c.Secret != "" {
		v.MinLength("auth.secret", c.Secret, 16)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

// key returns the HMAC key used for both signing and verification.
func (c *Config) key() []byte {
	return []byte(c.Secret)
}
