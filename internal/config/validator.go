// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// `loader.go` calls validateStruct immediately after it unmarshals the
// merged Koanf tree into a Config instance.  Any tag mismatch or
// validation error aborts startup, ensuring the binary never runs with
// partial, malformed, or missing configuration.
package config

import "github.com/go-playground/validator/v10"

var validate = validator.New()

func validateStruct(cfg *Config) error {
	return validate.Struct(cfg)
}
