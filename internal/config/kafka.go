package config

type Kafka struct {
	Enabled     bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	Addresses   []string `env:"KAFKA_ADDRESSES" envSeparator:","`
	TopicPrefix string   `env:"KAFKA_TOPIC_PREFIX"`
}
