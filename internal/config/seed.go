package config

type Seed struct {
	CustomerName  string `env:"SEED_CUSTOMER_NAME" envDefault:"Test User"`
	CustomerEmail string `env:"SEED_CUSTOMER_EMAIL" envDefault:"test@example.com"`
	CustomerPhone string `env:"SEED_CUSTOMER_PHONE" envDefault:"+1234567890"`
	ProductName   string `env:"SEED_PRODUCT_NAME" envDefault:"Sample Product"`
	ProductPrice  string `env:"SEED_PRODUCT_PRICE" envDefault:"100"`
	ProductStock  int    `env:"SEED_PRODUCT_STOCK" envDefault:"5"`
}
