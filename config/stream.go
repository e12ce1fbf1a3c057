package config

import (
	"time"

	"github.com/skillsenselab/streamkit/encryption"
	"github.com/skillsenselab/streamkit/util"
	"github.com/skillsenselab/streamkit/validation"
)

// StreamConfig configures the streaming delivery surfaces: the SSE serving
// side, the upstream source consumer, and the security material both use.
type StreamConfig struct {
	// Path is the HTTP path the SSE endpoint is mounted on.
	Path string `yaml:"path" mapstructure:"path"`
	// KeepAlive is the interval between keep-alive comments on client
	// connections.
	KeepAlive time.Duration `yaml:"keep_alive" mapstructure:"keep_alive"`
	// ClientBuffer is the per-client frame buffer capacity.
	ClientBuffer int `yaml:"client_buffer" mapstructure:"client_buffer"`

	// Endpoint is an upstream SSE endpoint to consume. Optional; services
	// that only serve events leave it empty.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// MaxReconnects bounds how often the upstream connection is
	// (re)established over a stream's lifetime.
	MaxReconnects int `yaml:"max_reconnects" mapstructure:"max_reconnects"`
	// ReconnectBackoff is the initial delay before reconnecting.
	ReconnectBackoff time.Duration `yaml:"reconnect_backoff" mapstructure:"reconnect_backoff"`

	// AuthSecret signs and verifies access tokens for protected endpoints.
	// Optional; empty leaves endpoints unprotected.
	AuthSecret string `yaml:"auth_secret" mapstructure:"auth_secret"`
	// EncryptionKey seals event payloads end to end. Optional; empty
	// disables sealing.
	EncryptionKey string `yaml:"encryption_key" mapstructure:"encryption_key"`
	// EncryptionAlgorithm selects the sealing cipher. Empty selects
	// AES-256-GCM.
	EncryptionAlgorithm string `yaml:"encryption_algorithm" mapstructure:"encryption_algorithm"`
}

// ApplyDefaults applies default values for unset fields.
func (c *StreamConfig) ApplyDefaults() {
	if c.Path == "" {
		c.Path = "/events"
	}
	if c.KeepAlive <= 0 {
		c.KeepAlive = 30 * time.Second
	}
	if c.ClientBuffer <= 0 {
		c.ClientBuffer = 256
	}
	if c.MaxReconnects <= 0 {
		c.MaxReconnects = 3
	}
	if c.ReconnectBackoff <= 0 {
		c.ReconnectBackoff = 100 * time.Millisecond
	}
}

// Validate checks the configuration fields.
func (c *StreamConfig) Validate() error {
	v := validation.New()
	v.Required("path", c.Path)
	v.MinDuration("keep_alive", c.KeepAlive, time.Second)
	v.Min("client_buffer", c.ClientBuffer, 1)
	v.Min("max_reconnects", c.MaxReconnects, 1)
	v.MinDuration("reconnect_backoff", c.ReconnectBackoff, time.Millisecond)
	v.URL("endpoint", c.Endpoint)
	if c.AuthSecret != "" {
		v.MinLength("auth_secret", c.AuthSecret, 16)
	}
	if c.EncryptionKey != "" {
		v.MinLength("encryption_key", c.EncryptionKey, 16)
	}
	if _, err := encryption.ParseAlgorithm(c.EncryptionAlgorithm); err != nil {
		v.AddError("encryption_algorithm", err.Error())
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Redacted returns a copy safe for logging, with secrets masked.
func (c StreamConfig) Redacted() StreamConfig {
	c.AuthSecret = util.MaskSecret(c.AuthSecret, 4)
	c.EncryptionKey = util.MaskSecret(c.EncryptionKey, 4)
	return c
}
