package services

import (
	"context"
	"time"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/metrics"
	"github.com/eligro/erp-integrations/internal/models"
)

// ContractSyncService reconciles Priority contract documents into Atera.
// Contracts are create-only: an existing contract with the same document
// number is left untouched. Existence is decided by comparing the
// "Priority Contract Number" custom field of every contract Atera already
// holds for the owning customer.
type ContractSyncService struct {
	logger   *logger.Logger
	config   *config.Config
	priority PrioritySource
	atera    AteraTarget
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewContractSyncService creates a new contract reconciler.
func NewContractSyncService(
	log *logger.Logger,
	cfg *config.Config,
	priority PrioritySource,
	atera AteraTarget,
	m *metrics.Metrics,
) *ContractSyncService {
	return &ContractSyncService{
		logger:   log,
		config:   cfg,
		priority: priority,
		atera:    atera,
		metrics:  m,
		now:      time.Now,
	}
}

// Run performs one contract sync pass.
func (s *ContractSyncService) Run(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	contracts, err := s.priority.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	contracts = s.applyPullWindow(contracts)
	if len(contracts) == 0 {
		s.logger.Info("No Priority contracts found for the pull period")
		return result, nil
	}

	// Customer statuses gate contract creation: only contracts of active
	// customers cross over.
	priorityCustomers, err := s.priority.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	statusByCustomer := make(map[string]string)
	for _, c := range priorityCustomers {
		statusByCustomer[c.CustName] = c.StatDes
	}

	ateraCustomers, err := s.atera.ListCustomers(ctx, true)
	if err != nil {
		return nil, err
	}
	customerMap := make(map[string]int)
	for _, c := range ateraCustomers {
		if c.PriorityCustomerNumber != "" {
			customerMap[c.PriorityCustomerNumber] = c.CustomerID
		}
	}

	for _, contract := range contracts {
		s.syncOne(ctx, contract, statusByCustomer, customerMap, result)
	}

	return result, nil
}

func (s *ContractSyncService) syncOne(ctx context.Context, contract models.PriorityContract, statusByCustomer map[string]string, customerMap map[string]int, result *SyncResult) {
	log := s.logger.WithContract(contract.DocNo).WithField("custname", contract.CustName)

	if contract.CustName == "" || contract.DocNo == "" {
		log.WithField("contract", contract).Error("Contract missing CUSTNAME or DOCNO, skipping")
		s.metrics.RecordSkipped("contract")
		result.Skipped++
		return
	}

	if contract.StatDes == s.config.Sync.ContractCancelledStatus {
		log.Info("Contract is cancelled, skipping")
		s.metrics.RecordSkipped("contract")
		result.Skipped++
		return
	}
	if statusByCustomer[contract.CustName] != s.config.Sync.CustomerActiveStatus {
		log.Info("Owning customer is not active, skipping contract")
		s.metrics.RecordSkipped("contract")
		result.Skipped++
		return
	}

	customerID, ok := customerMap[contract.CustName]
	if !ok {
		log.WithField("contract", contract).Error("No matching Atera customer for contract")
		s.metrics.RecordSkipped("contract")
		result.Skipped++
		return
	}

	existing, err := s.atera.ListContractsForCustomer(ctx, customerID)
	if err != nil {
		log.WithError(err).WithField("contract", contract).Error("Failed to list Atera contracts for customer")
		s.metrics.RecordError("contract")
		result.Errors++
		return
	}

	for _, ac := range existing {
		docNo, err := s.atera.GetCustomField(ctx, FieldKindContract, ac.ContractID, ContractNumberField)
		if err != nil {
			log.WithError(err).WithField("contract_id", ac.ContractID).
				Error("Failed to read contract cross-reference")
			s.metrics.RecordError("contract")
			result.Errors++
			return
		}
		if docNo == contract.DocNo {
			log.Info("Contract already exists in Atera, skipping")
			s.metrics.RecordSkipped("contract")
			result.Skipped++
			return
		}
	}

	name := contract.UniDesc
	if name == "" {
		name = "Contract " + contract.DocNo
	}

	payload := models.ContractPayload{
		ContractName: name,
		CustomerID:   customerID,
		StartDate:    contract.ValidDate,
		EndDate:      contract.ExpiryDate,
		// Contracts that survive the status filters are active.
		Active:       true,
		Taxable:      true,
		ContractType: "RetainerFlatFee",
		RetainerFlatFeeContract: models.RetainerFlatFee{
			RateID:        1,
			Quantity:      1,
			BillingPeriod: "Monthly",
		},
	}

	log.Info("Creating contract in Atera")
	contractID, err := s.atera.CreateContract(ctx, payload)
	if err != nil {
		log.WithError(err).WithField("contract", contract).Error("Failed to create contract in Atera")
		s.metrics.RecordError("contract")
		result.Errors++
		return
	}

	if err := s.atera.SetCustomField(ctx, FieldKindContract, contractID, ContractNumberField, contract.DocNo); err != nil {
		log.WithError(err).WithField("contract_id", contractID).
			Error("Failed to write contract cross-reference")
		s.metrics.RecordError("contract")
		result.Errors++
		return
	}

	log.WithField("contract_id", contractID).Info("Contract created in Atera")
	s.metrics.RecordCreated("contract")
	result.Created++
}

// applyPullWindow keeps contracts modified within the configured pull
// period. Contracts with a missing or unparsable UDATE are excluded.
func (s *ContractSyncService) applyPullWindow(contracts []models.PriorityContract) []models.PriorityContract {
	cutoff := s.now().UTC().AddDate(0, 0, -s.config.Sync.PullPeriodDays)

	filtered := contracts[:0]
	for _, c := range contracts {
		if c.UDate == "" {
			continue
		}
		modified, err := ParseFlexibleTime(c.UDate)
		if err != nil {
			s.logger.WithContract(c.DocNo).WithError(err).
				WithField("contract", c).
				Error("Unparsable contract UDATE, excluding")
			continue
		}
		if !modified.Before(cutoff) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
