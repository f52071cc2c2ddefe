package config

import "time"

type View struct {
	Timezone          *time.Location `env:"VIEW_TIMEZONE" envDefault:"UTC"`
	DefaultPageSize   int            `env:"VIEW_DEFAULT_PAGE_SIZE" envDefault:"10"`
	ValidateFutureETA bool           `env:"VALIDATE_FUTURE_ETA" envDefault:"false"`
}
