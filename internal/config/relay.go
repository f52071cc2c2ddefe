package config

import "time"

type Relay struct {
	BatchSize  uint32        `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	Interval   time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`
	BufferSize uint32        `env:"RELAY_BUFFER_SIZE" envDefault:"1024"`
}
