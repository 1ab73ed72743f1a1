package container

import (
	"github.com/eligro/erp-integrations/internal/atera"
	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/metrics"
	"github.com/eligro/erp-integrations/internal/models"
	"github.com/eligro/erp-integrations/internal/priority"
	"github.com/eligro/erp-integrations/internal/services"

	"go.uber.org/fx"
)

// Module provides dependency injection configuration
var Module = fx.Options(
	// Configuration
	fx.Provide(config.LoadConfig),

	// Logging
	fx.Provide(logger.NewLogger),

	// Metrics
	fx.Provide(metrics.New),

	// API clients
	fx.Provide(priority.NewClient),
	fx.Provide(atera.NewClient),
	fx.Provide(func(c *priority.Client) services.PrioritySource {
		return c
	}),
	fx.Provide(func(c *atera.Client) services.AteraTarget {
		return c
	}),

	// Conflict side channel
	fx.Provide(services.NewCSVConflictLog),
	fx.Provide(func(l *services.CSVConflictLog) services.ConflictLog {
		return l
	}),

	// Reconcilers
	fx.Provide(services.NewCustomerSyncService),
	fx.Provide(services.NewContactSyncService),
	fx.Provide(services.NewContractSyncService),
	fx.Provide(services.NewTicketSyncService),
	fx.Provide(services.NewOrchestrator),

	// Models (for validation)
	fx.Provide(models.NewValidationService),

	// Validate configuration on startup
	fx.Invoke(func(cfg *config.Config, vs *models.ValidationService) error {
		return vs.ValidateStruct(cfg)
	}),
)
