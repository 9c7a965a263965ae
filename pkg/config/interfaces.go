package config

import "context"

// ConfigLoader reads configuration from a source into dst.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by config structs that can check themselves.
// Validate may also apply defaults for unset fields.
type Validator interface {
	Validate() error
}
