package config

type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	Group     string   `env:"KAFKA_GROUP" envDefault:"graphql-crm"`
	ClientID  string   `env:"KAFKA_CLIENT_ID" envDefault:"graphql-crm"`
}
