package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Prefix is prepended to every environment variable the server reads.
const Prefix = "BATMAN_"

type Config struct {
	Logger  Logger  `envPrefix:"LOGGER_"`
	HTTP    HTTP    `envPrefix:"HTTP_"`
	API     API     `envPrefix:"API_"`
	Schemas Schemas `envPrefix:"SCHEMAS_"`
}

// Parse loads the given dotenv files when they exist and then reads the
// environment. Variables already set in the environment win over dotenv
// entries.
func Parse(dotenv ...string) (*Config, error) {
	for _, path := range dotenv {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.WithStack(err)
		}
		if err := godotenv.Load(path); err != nil {
			return nil, errors.Wrapf(err, "could not load %s", path)
		}
	}

	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: Prefix,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
