package config

// Schemas selects where page schemas come from. An empty Dir uses the
// schemas bundled with the binary.
type Schemas struct {
	Dir string `env:"DIR,expand"`
}
