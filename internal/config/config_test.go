package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Run("atera defaults", func(t *testing.T) {
		assert.Equal(t, "https://app.atera.com/api/v3", cfg.Atera.APIURL)
	})

	t.Run("sync defaults", func(t *testing.T) {
		// Every entity sync starts disabled; enabling is an explicit
		// configuration decision.
		assert.False(t, cfg.Sync.Customers)
		assert.False(t, cfg.Sync.Contacts)
		assert.False(t, cfg.Sync.Contracts)
		assert.False(t, cfg.Sync.Tickets)

		assert.Equal(t, 2, cfg.Sync.PullPeriodDays)
		assert.Equal(t, 2, cfg.Sync.DaysBackTickets)
		assert.Equal(t, "duration", cfg.Sync.TicketQuantitySource)
		assert.Equal(t, "Cancelled", cfg.Sync.ContractCancelledStatus)
		assert.Equal(t, "Active", cfg.Sync.CustomerActiveStatus)
		assert.Equal(t, "failed_duplicated_emails.csv", cfg.Sync.ConflictLogPath)
	})

	t.Run("logging defaults", func(t *testing.T) {
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "json", cfg.Logging.Format)
	})
}
