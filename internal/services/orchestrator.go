package services

import (
	"context"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
)

// EntitySync is one reconciler pass; all four sync services implement it.
type EntitySync interface {
	Run(ctx context.Context) (*SyncResult, error)
}

// Orchestrator sequences the enabled entity syncs. Each entity type fails
// independently: a read-phase failure in one sync is logged and the next
// sync still runs.
type Orchestrator struct {
	logger *logger.Logger
	config *config.Config

	customers EntitySync
	contacts  EntitySync
	contracts EntitySync
	tickets   EntitySync
}

// NewOrchestrator creates the sync orchestrator.
func NewOrchestrator(
	log *logger.Logger,
	cfg *config.Config,
	customers *CustomerSyncService,
	contacts *ContactSyncService,
	contracts *ContractSyncService,
	tickets *TicketSyncService,
) *Orchestrator {
	return &Orchestrator{
		logger:    log,
		config:    cfg,
		customers: customers,
		contacts:  contacts,
		contracts: contracts,
		tickets:   tickets,
	}
}

// Run executes every enabled sync once.
func (o *Orchestrator) Run(ctx context.Context) {
	o.runOne(ctx, "customer", o.config.Sync.Customers, o.customers)
	o.runOne(ctx, "contact", o.config.Sync.Contacts, o.contacts)
	o.runOne(ctx, "contract", o.config.Sync.Contracts, o.contracts)
	o.runOne(ctx, "ticket", o.config.Sync.Tickets, o.tickets)
}

func (o *Orchestrator) runOne(ctx context.Context, entity string, enabled bool, sync EntitySync) {
	log := o.logger.WithField("entity", entity)
	if !enabled {
		log.Info("Sync disabled in config")
		return
	}

	log.Info("Starting sync")
	result, err := sync.Run(ctx)
	if err != nil {
		log.WithError(err).Error("Sync aborted")
		return
	}
	log.WithField("created", result.Created).
		WithField("updated", result.Updated).
		WithField("skipped", result.Skipped).
		WithField("conflicts", result.Conflicts).
		WithField("errors", result.Errors).
		Info("Sync finished")
}
