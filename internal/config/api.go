package config

import "time"

// API points at the REST backend the dashboard consumes.
type API struct {
	BaseURL string        `env:"BASE_URL,expand" envDefault:"http://127.0.0.1:8000/api"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
