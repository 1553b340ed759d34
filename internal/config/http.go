package config

import "time"

type HTTP struct {
	Port            uint32        `env:"HTTP_PORT" envDefault:"8000"`
	Swagger         bool          `env:"HTTP_SWAGGER" envDefault:"true"`
	Introspection   bool          `env:"HTTP_GRAPHQL_INTROSPECTION" envDefault:"true"`
	AllowedOrigins  []string      `env:"HTTP_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
