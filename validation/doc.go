// Package validation provides input validation for streamkit configs and
// event payloads.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// the usual choice for configuration types.
//
// # Struct Tag Validation
//
//	type StreamConfig struct {
//	    Endpoint  string `validate:"required,url"`
//	    KeepAlive int    `validate:"min=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.RequiredUUID("client_id", clientID).Max("buffer", n, 1024)
//	if appErr := v.Validate(); appErr != nil { ... }
//
// Both paths produce an *errors.AppError with code INVALID_INPUT and a
// per-field breakdown in Details.
package validation
