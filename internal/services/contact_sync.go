package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/metrics"
	"github.com/eligro/erp-integrations/internal/models"
)

// contactKey identifies an existing Atera contact by owning customer and
// lower-cased full name.
type contactKey struct {
	customerID int
	fullName   string
}

// ContactSyncService reconciles Priority phonebook entries into Atera
// contacts. Contact sync must survive partial bad data: every failure is
// scoped to one contact and the batch continues.
type ContactSyncService struct {
	logger      *logger.Logger
	config      *config.Config
	priority    PrioritySource
	atera       AteraTarget
	conflictLog ConflictLog
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewContactSyncService creates a new contact reconciler.
func NewContactSyncService(
	log *logger.Logger,
	cfg *config.Config,
	priority PrioritySource,
	atera AteraTarget,
	conflictLog ConflictLog,
	m *metrics.Metrics,
) *ContactSyncService {
	return &ContactSyncService{
		logger:      log,
		config:      cfg,
		priority:    priority,
		atera:       atera,
		conflictLog: conflictLog,
		metrics:     m,
		now:         time.Now,
	}
}

// Run performs one contact sync pass.
func (s *ContactSyncService) Run(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	priorityContacts, err := s.priority.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	ateraContacts, err := s.atera.ListContacts(ctx)
	if err != nil {
		return nil, err
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

	contactMap := make(map[contactKey]models.AteraContact)
	for _, c := range ateraContacts {
		fullName := strings.TrimSpace(strings.TrimSpace(c.Firstname) + " " + strings.TrimSpace(c.Lastname))
		if c.CustomerID != 0 && fullName != "" {
			contactMap[contactKey{c.CustomerID, strings.ToLower(fullName)}] = c
		}
	}

	for _, pc := range priorityContacts {
		s.syncOne(ctx, pc, customerMap, contactMap, result)
	}

	return result, nil
}

func (s *ContactSyncService) syncOne(ctx context.Context, pc models.PriorityContact, customerMap map[string]int, contactMap map[contactKey]models.AteraContact, result *SyncResult) {
	log := s.logger.WithCustomer(pc.CustName)

	if pc.CustName == "" {
		log.WithField("contact", pc).Info("Skipping contact with empty CUSTNAME")
		s.metrics.RecordSkipped("contact")
		result.Skipped++
		return
	}

	customerID, ok := customerMap[pc.CustName]
	if !ok {
		log.WithField("contact", pc).Error("No matching customer in Atera for contact")
		s.metrics.RecordSkipped("contact")
		result.Skipped++
		return
	}

	first, last, err := ResolveContactName(pc.FirstName, pc.LastName, pc.Name)
	if err != nil {
		log.WithField("contact", pc).Error("Contact with missing name fields")
		s.metrics.RecordSkipped("contact")
		result.Skipped++
		return
	}

	fullName := strings.TrimSpace(first + " " + last)
	existing, exists := contactMap[contactKey{customerID, strings.ToLower(fullName)}]

	email := strings.ToLower(strings.TrimSpace(pc.Email))
	if email == "" {
		email = SynthesizeEmail(first, last, customerID)
		log.WithField("full_name", fullName).
			WithField("generated_email", email).
			Info("Contact has no email, generated placeholder")
	}

	name := strings.TrimSpace(pc.Name)
	payload := models.ContactPayload{
		Email:           email,
		Firstname:       fallback(first, name),
		Lastname:        fallback(last, name),
		JobTitle:        pc.PositionDes,
		Phone:           SanitizePhone(pc.PhoneNum),
		MobilePhone:     SanitizePhone(pc.CellPhone),
		IsContactPerson: true,
		InIgnoreMode:    false,
	}

	if exists {
		if err := s.atera.UpdateContact(ctx, existing.EndUserID, payload); err != nil {
			log.WithError(err).WithField("contact", pc).Error("Failed to update contact")
			s.metrics.RecordError("contact")
			result.Errors++
			return
		}
		log.WithField("end_user_id", existing.EndUserID).Info("Contact updated in Atera")
		s.metrics.RecordUpdated("contact")
		result.Updated++
		return
	}

	payload.CustomerID = customerID
	payload.CreatedOn = s.now().UTC().Format(time.RFC3339)
	if _, err := s.atera.CreateContact(ctx, payload); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			log.WithField("email", email).Info("Email already exists in Atera, recording conflict")
			if logErr := s.conflictLog.Record(customerID, pc.CustName, email); logErr != nil {
				log.WithError(logErr).Error("Failed to record duplicate email conflict")
			}
			s.metrics.RecordConflict("contact")
			result.Conflicts++
			return
		}
		log.WithError(err).WithField("contact", pc).Error("Failed to create contact")
		s.metrics.RecordError("contact")
		result.Errors++
		return
	}

	log.WithField("full_name", fullName).Info("Contact created in Atera")
	s.metrics.RecordCreated("contact")
	result.Created++
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}
	return alt
}
