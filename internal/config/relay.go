package config

import "time"

// Relay controls how the outbox is drained into Kafka.
type Relay struct {
	BatchSize       uint32        `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	Interval        time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`
	ShutdownTimeout time.Duration `env:"RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
