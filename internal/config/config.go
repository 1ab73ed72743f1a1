package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the sync bridge
type Config struct {
	Priority PriorityConfig `mapstructure:"priority"`
	Atera    AteraConfig    `mapstructure:"atera"`
	Sync     SyncConfig     `mapstructure:"sync"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PriorityConfig holds Priority ERP API configuration
type PriorityConfig struct {
	APIURL   string `mapstructure:"api_url" json:"api_url" validate:"required,url"`
	User     string `mapstructure:"user" json:"user" validate:"required"`
	Password string `mapstructure:"password" json:"password" validate:"required"`
}

// AteraConfig holds Atera API configuration
type AteraConfig struct {
	APIURL string `mapstructure:"api_url" json:"api_url" validate:"required,url"`
	APIKey string `mapstructure:"api_key" json:"api_key" validate:"required"`
}

// SyncConfig holds per-entity sync toggles and window settings
type SyncConfig struct {
	Customers bool `mapstructure:"customers" json:"customers"`
	Contacts  bool `mapstructure:"contacts" json:"contacts"`
	Contracts bool `mapstructure:"contracts" json:"contracts"`
	Tickets   bool `mapstructure:"tickets" json:"tickets"`

	// PullPeriodDays filters Priority customers and contracts by last-modified
	// timestamp. Zero disables the customer-side filter; contracts always
	// apply it.
	PullPeriodDays  int `mapstructure:"pull_period_days" json:"pull_period_days" validate:"min=0"`
	DaysBackTickets int `mapstructure:"days_back_tickets" json:"days_back_tickets" validate:"min=0"`

	// TicketQuantitySource selects how the billable quantity pushed to
	// Priority is computed: from on-site/off-site durations or from the
	// "Technician Billable Hours" ticket custom field.
	TicketQuantitySource string `mapstructure:"ticket_quantity_source" json:"ticket_quantity_source" validate:"oneof=duration billable_hours_field"`

	// ContractCancelledStatus is the Priority status description marking a
	// cancelled contract; CustomerActiveStatus marks an active customer.
	// Contracts failing either check are never pushed to Atera.
	ContractCancelledStatus string `mapstructure:"contract_cancelled_status" json:"contract_cancelled_status" validate:"required"`
	CustomerActiveStatus    string `mapstructure:"customer_active_status" json:"customer_active_status" validate:"required"`

	ConflictLogPath string `mapstructure:"conflict_log_path" json:"conflict_log_path" validate:"required"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// LoadConfig loads configuration from environment and config files
func LoadConfig() (*Config, error) {
	viper.SetDefault("priority.api_url", "")
	viper.SetDefault("priority.user", "")
	viper.SetDefault("priority.password", "")
	viper.SetDefault("atera.api_url", "https://app.atera.com/api/v3")
	viper.SetDefault("atera.api_key", "")
	viper.SetDefault("sync.customers", false)
	viper.SetDefault("sync.contacts", false)
	viper.SetDefault("sync.contracts", false)
	viper.SetDefault("sync.tickets", false)
	viper.SetDefault("sync.pull_period_days", 2)
	viper.SetDefault("sync.days_back_tickets", 2)
	viper.SetDefault("sync.ticket_quantity_source", "duration")
	viper.SetDefault("sync.contract_cancelled_status", "Cancelled")
	viper.SetDefault("sync.customer_active_status", "Active")
	viper.SetDefault("sync.conflict_log_path", "failed_duplicated_emails.csv")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
