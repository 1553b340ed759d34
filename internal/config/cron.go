package config

import "time"

type Cron struct {
	GraphQLURL     string        `env:"CRM_GRAPHQL_URL" envDefault:"http://localhost:8000/graphql"`
	RequestTimeout time.Duration `env:"CRM_GRAPHQL_TIMEOUT" envDefault:"10s"`
	MaxRetries     uint64        `env:"CRM_GRAPHQL_RETRIES" envDefault:"3"`

	HeartbeatInterval     time.Duration `env:"CRON_HEARTBEAT_INTERVAL" envDefault:"5m"`
	LowStockInterval      time.Duration `env:"CRON_LOW_STOCK_INTERVAL" envDefault:"12h"`
	OrderReminderInterval time.Duration `env:"CRON_ORDER_REMINDER_INTERVAL" envDefault:"24h"`
	ReportInterval        time.Duration `env:"CRON_REPORT_INTERVAL" envDefault:"168h"`
	OrderReminderLookback time.Duration `env:"CRON_ORDER_REMINDER_LOOKBACK" envDefault:"168h"`

	HeartbeatLogFile     string `env:"CRON_HEARTBEAT_LOG_FILE" envDefault:"/tmp/crm_heartbeat_log.txt"`
	LowStockLogFile      string `env:"CRON_LOW_STOCK_LOG_FILE" envDefault:"/tmp/low_stock_updates_log.txt"`
	OrderReminderLogFile string `env:"CRON_ORDER_REMINDER_LOG_FILE" envDefault:"/tmp/order_reminders_log.txt"`
	ReportLogFile        string `env:"CRON_REPORT_LOG_FILE" envDefault:"/tmp/crm_report_log.txt"`
}
