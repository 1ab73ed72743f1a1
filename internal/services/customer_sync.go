package services

import (
	"context"
	"strings"
	"time"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/metrics"
	"github.com/eligro/erp-integrations/internal/models"
)

// CustomerSyncService reconciles Priority customers into Atera. Matching is
// by the "Priority Customer Number" cross-reference first, then by
// case-insensitive name; either way the cross-reference is rewritten after
// the mutation so later runs match by id.
type CustomerSyncService struct {
	logger   *logger.Logger
	config   *config.Config
	priority PrioritySource
	atera    AteraTarget
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewCustomerSyncService creates a new customer reconciler.
func NewCustomerSyncService(
	log *logger.Logger,
	cfg *config.Config,
	priority PrioritySource,
	atera AteraTarget,
	m *metrics.Metrics,
) *CustomerSyncService {
	return &CustomerSyncService{
		logger:   log,
		config:   cfg,
		priority: priority,
		atera:    atera,
		metrics:  m,
		now:      time.Now,
	}
}

// Run performs one customer sync pass. A failure to list either side aborts
// the pass; failures on a single customer are logged and the pass continues.
func (s *CustomerSyncService) Run(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	priorityCustomers, err := s.priority.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	priorityCustomers = s.applyPullWindow(priorityCustomers)

	ateraCustomers, err := s.atera.ListCustomers(ctx, true)
	if err != nil {
		return nil, err
	}

	idMap := make(map[string]int)
	nameMap := make(map[string]int)
	for _, c := range ateraCustomers {
		if c.PriorityCustomerNumber != "" {
			idMap[c.PriorityCustomerNumber] = c.CustomerID
		}
		name := strings.ToLower(strings.TrimSpace(c.CustomerName))
		if name != "" {
			nameMap[name] = c.CustomerID
		}
	}

	for _, pc := range priorityCustomers {
		if err := s.syncOne(ctx, pc, idMap, nameMap, result); err != nil {
			s.logger.WithCustomer(pc.CustName).WithError(err).
				WithField("customer", pc).
				Error("Failed to sync customer")
			s.metrics.RecordError("customer")
			result.Errors++
		}
	}

	return result, nil
}

func (s *CustomerSyncService) syncOne(ctx context.Context, pc models.PriorityCustomer, idMap, nameMap map[string]int, result *SyncResult) error {
	log := s.logger.WithCustomer(pc.CustName)
	payload := buildCustomerPayload(pc)

	customerID, ok := idMap[pc.CustName]
	matchedBy := "id"
	if !ok {
		customerID, ok = nameMap[strings.ToLower(strings.TrimSpace(pc.CustDes))]
		matchedBy = "name"
	}

	if ok {
		log.WithField("atera_customer_id", customerID).
			WithField("matched_by", matchedBy).
			Info("Found matching customer in Atera, updating")
		if err := s.atera.UpdateCustomer(ctx, customerID, payload); err != nil {
			return err
		}
		s.metrics.RecordUpdated("customer")
		result.Updated++
	} else {
		log.Info("No matching customer in Atera, creating")
		payload.CreatedOn = s.now().UTC().Format(time.RFC3339)
		createdID, err := s.atera.CreateCustomer(ctx, payload)
		if err != nil {
			return err
		}
		customerID = createdID
		log.WithField("atera_customer_id", customerID).Info("Customer created in Atera")
		s.metrics.RecordCreated("customer")
		result.Created++
	}

	// Rewrite the cross-reference even on id matches; this repairs drift
	// and converts name-only matches into id matches for the next run.
	return s.atera.SetCustomField(ctx, FieldKindCustomer, customerID, CustomerNumberField, pc.CustName)
}

// applyPullWindow drops customers whose last-modified timestamp falls
// before now minus the configured pull period. Customers without a
// timestamp are kept; the filter is disabled when the period is zero.
func (s *CustomerSyncService) applyPullWindow(customers []models.PriorityCustomer) []models.PriorityCustomer {
	if s.config.Sync.PullPeriodDays <= 0 {
		return customers
	}
	cutoff := s.now().UTC().AddDate(0, 0, -s.config.Sync.PullPeriodDays)

	filtered := customers[:0]
	for _, c := range customers {
		if c.UDate == "" {
			filtered = append(filtered, c)
			continue
		}
		modified, err := ParseFlexibleTime(c.UDate)
		if err != nil {
			s.logger.WithCustomer(c.CustName).WithError(err).
				Error("Unparsable customer UDATE, keeping record")
			filtered = append(filtered, c)
			continue
		}
		if !modified.Before(cutoff) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// buildCustomerPayload maps a Priority customer onto the Atera payload.
// Optional attributes default to empty strings or zeros and are always
// present in the outbound body.
func buildCustomerPayload(pc models.PriorityCustomer) models.CustomerPayload {
	return models.CustomerPayload{
		CustomerName:   pc.CustDes,
		BusinessNumber: pc.WTaxNum,
		Domain:         pc.HostName,
		Address:        pc.Address,
		City:           "",
		State:          pc.StateName,
		Country:        "",
		Phone:          pc.Phone,
		Fax:            pc.Fax,
		Notes:          "",
		Links:          "",
		Longitude:      0,
		Latitude:       0,
		ZipCodeStr:     pc.Zip,
	}
}
