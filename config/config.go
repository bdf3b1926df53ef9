package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const AVATAR_SIZE = 80

// Config is the full process configuration, loaded from the
// environment at startup.
type Config struct {
	Port      string   `env:"PORT,required"`
	GinMode   string   `env:"GIN_MODE" envDefault:"release"`
	FeOrigins []string `env:"FE_ORIGINS" envSeparator:";" envDefault:"http://localhost:3000"`

	DBUser string `env:"DB_USER,required"`
	DBPass string `env:"DB_PASS,required"`
	DBHost string `env:"DB_HOST,required"`
	DBName string `env:"DB_NAME" envDefault:"blogicum"`

	MediaBucket string `env:"MEDIA_BUCKET,required"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// DSN builds the MySQL connection string. parseTime is required for
// the pub_date comparisons done in SQL.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?tls=true&parseTime=true",
		c.DBUser, c.DBPass, c.DBHost, c.DBName)
}
