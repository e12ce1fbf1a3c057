// Package config provides configuration loading and validation for
// streamkit applications.
//
// It uses Viper to load configuration from YAML files and environment
// variables, with .env file support for local development. Services
// compose their configuration from the provided building blocks and load
// it in one call:
//
//	type AppConfig struct {
//		config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//		Stream config.StreamConfig `yaml:"stream" mapstructure:"stream"`
//	}
//
//	func (c *AppConfig) ApplyDefaults() {
//		c.ServiceConfig.ApplyDefaults()
//		c.Stream.ApplyDefaults()
//	}
//
//	func (c *AppConfig) Validate() error {
//		if err := c.ServiceConfig.Validate(); err != nil {
//			return err
//		}
//		return c.Stream.Validate()
//	}
//
//	var cfg AppConfig
//	if err := config.Load("ticker-service", &cfg); err != nil {
//		logger.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
//	}
//
// Config files are resolved from standard locations (./cmd/<service>/,
// ./config/, the working directory) unless an explicit path is given.
// Environment variables override file values using underscore-separated
// paths (e.g., STREAM_KEEP_ALIVE).
package config
