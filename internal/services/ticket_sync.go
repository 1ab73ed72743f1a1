package services

import (
	"context"
	"strconv"
	"time"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/metrics"
	"github.com/eligro/erp-integrations/internal/models"
)

// Quantity source variants for the ticket sync.
const (
	QuantityFromDuration      = "duration"
	QuantityFromBillableField = "billable_hours_field"
)

// TicketSyncService flows the reverse direction: recent Atera tickets are
// pushed to Priority as ticket charges. The Atera-customer-to-CUSTNAME
// resolution is cached per run, since many tickets share a customer.
type TicketSyncService struct {
	logger   *logger.Logger
	config   *config.Config
	priority PrioritySource
	atera    AteraTarget
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewTicketSyncService creates a new ticket reconciler.
func NewTicketSyncService(
	log *logger.Logger,
	cfg *config.Config,
	priority PrioritySource,
	atera AteraTarget,
	m *metrics.Metrics,
) *TicketSyncService {
	return &TicketSyncService{
		logger:   log,
		config:   cfg,
		priority: priority,
		atera:    atera,
		metrics:  m,
		now:      time.Now,
	}
}

// Run performs one ticket sync pass.
func (s *TicketSyncService) Run(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	since := s.now().UTC().AddDate(0, 0, -s.config.Sync.DaysBackTickets)
	tickets, err := s.atera.ListTickets(ctx, since)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		s.logger.Info("No tickets found for syncing")
		return result, nil
	}

	// Atera customer id -> Priority CUSTNAME. Empty string caches a
	// known-unresolvable customer so it is not looked up again.
	custNameCache := make(map[int]string)

	for _, ticket := range tickets {
		s.syncOne(ctx, ticket, custNameCache, result)
	}

	return result, nil
}

func (s *TicketSyncService) syncOne(ctx context.Context, ticket models.AteraTicket, custNameCache map[int]string, result *SyncResult) {
	log := s.logger.WithTicket(ticket.TicketID)

	if ticket.CustomerID == 0 {
		log.Error("Ticket has no CustomerID, cannot sync")
		s.metrics.RecordSkipped("ticket")
		result.Skipped++
		return
	}

	custName, cached := custNameCache[ticket.CustomerID]
	if !cached {
		resolved, err := s.resolveCustName(ctx, ticket.CustomerID)
		if err != nil {
			log.WithError(err).WithField("atera_customer_id", ticket.CustomerID).
				Error("Failed to resolve Priority customer number for ticket")
			s.metrics.RecordError("ticket")
			result.Errors++
			return
		}
		custName = resolved
		custNameCache[ticket.CustomerID] = custName
	}

	if custName == "" {
		log.WithField("atera_customer_id", ticket.CustomerID).
			Error("No Priority customer number for ticket, skipping")
		s.metrics.RecordSkipped("ticket")
		result.Skipped++
		return
	}

	charge := models.TicketCharge{
		CustName: custName,
		DocNo:    strconv.Itoa(ticket.TicketID),
	}

	switch s.config.Sync.TicketQuantitySource {
	case QuantityFromBillableField:
		charge.Quantity = s.billableHours(ctx, ticket)
		charge.Status = ticket.TicketStatus
		charge.PaymentType = s.paymentType(ctx, ticket)
	default:
		totalMinutes := ticket.OnSiteDurationMinutes + ticket.OffSiteDurationMinutes
		charge.Quantity = float64(totalMinutes) / 60.0
	}

	if err := s.priority.SubmitTicketCharge(ctx, charge); err != nil {
		log.WithError(err).WithField("charge", charge).Error("Failed to send ticket to Priority")
		s.metrics.RecordError("ticket")
		result.Errors++
		return
	}

	log.WithField("charge", charge).Info("Ticket sent to Priority")
	s.metrics.RecordCreated("ticket")
	result.Created++
}

// resolveCustName fetches the ticket's owning Atera customer and reads its
// cross-reference custom field. An existing customer without the field
// resolves to the empty string.
func (s *TicketSyncService) resolveCustName(ctx context.Context, customerID int) (string, error) {
	customer, err := s.atera.GetCustomer(ctx, customerID)
	if err != nil {
		return "", err
	}
	if customer == nil {
		s.logger.WithAteraCustomer(customerID).Error("No customer record in Atera for ticket")
		return "", nil
	}
	return s.atera.GetCustomField(ctx, FieldKindCustomer, customerID, CustomerNumberField)
}

// billableHours reads the "Technician Billable Hours" custom field off the
// ticket. Missing or unparsable values charge zero hours and are logged.
func (s *TicketSyncService) billableHours(ctx context.Context, ticket models.AteraTicket) float64 {
	value, err := s.atera.GetCustomField(ctx, FieldKindTicket, ticket.TicketID, BillableHoursField)
	if err != nil {
		s.logger.WithTicket(ticket.TicketID).WithError(err).
			Error("Failed to read billable hours field, defaulting to 0")
		return 0
	}
	if value == "" {
		s.logger.WithTicket(ticket.TicketID).Error("Billable hours field is empty, defaulting to 0")
		return 0
	}
	hours, err := strconv.ParseFloat(value, 64)
	if err != nil {
		s.logger.WithTicket(ticket.TicketID).WithError(err).
			WithField("value", value).
			Error("Unparsable billable hours value, defaulting to 0")
		return 0
	}
	return hours
}

func (s *TicketSyncService) paymentType(ctx context.Context, ticket models.AteraTicket) string {
	value, err := s.atera.GetCustomField(ctx, FieldKindTicket, ticket.TicketID, PaymentTypeField)
	if err != nil {
		s.logger.WithTicket(ticket.TicketID).WithError(err).
			Error("Failed to read payment type field")
		return ""
	}
	return value
}
