package services

import (
	"context"
	"time"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/models"

	"github.com/stretchr/testify/mock"
)

// newTestLogger builds a quiet text logger for reconciler tests.
func newTestLogger() *logger.Logger {
	return logger.NewLogger(&config.Config{
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "text",
		},
	})
}

// MockPrioritySource mocks the Priority read/write API.
type MockPrioritySource struct {
	mock.Mock
}

func (m *MockPrioritySource) ListCustomers(ctx context.Context) ([]models.PriorityCustomer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PriorityCustomer), args.Error(1)
}

func (m *MockPrioritySource) ListContacts(ctx context.Context) ([]models.PriorityContact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PriorityContact), args.Error(1)
}

func (m *MockPrioritySource) ListContracts(ctx context.Context) ([]models.PriorityContract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PriorityContract), args.Error(1)
}

func (m *MockPrioritySource) SubmitTicketCharge(ctx context.Context, charge models.TicketCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

// MockAteraTarget mocks the Atera read/write API.
type MockAteraTarget struct {
	mock.Mock
}

func (m *MockAteraTarget) ListCustomers(ctx context.Context, enrich bool) ([]models.AteraCustomer, error) {
	args := m.Called(ctx, enrich)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AteraCustomer), args.Error(1)
}

func (m *MockAteraTarget) GetCustomer(ctx context.Context, customerID int) (*models.AteraCustomer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AteraCustomer), args.Error(1)
}

func (m *MockAteraTarget) CreateCustomer(ctx context.Context, payload models.CustomerPayload) (int, error) {
	args := m.Called(ctx, payload)
	return args.Int(0), args.Error(1)
}

func (m *MockAteraTarget) UpdateCustomer(ctx context.Context, customerID int, payload models.CustomerPayload) error {
	args := m.Called(ctx, customerID, payload)
	return args.Error(0)
}

func (m *MockAteraTarget) GetCustomField(ctx context.Context, kind string, entityID int, fieldName string) (string, error) {
	args := m.Called(ctx, kind, entityID, fieldName)
	return args.String(0), args.Error(1)
}

func (m *MockAteraTarget) SetCustomField(ctx context.Context, kind string, entityID int, fieldName, value string) error {
	args := m.Called(ctx, kind, entityID, fieldName, value)
	return args.Error(0)
}

func (m *MockAteraTarget) ListContacts(ctx context.Context) ([]models.AteraContact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AteraContact), args.Error(1)
}

func (m *MockAteraTarget) CreateContact(ctx context.Context, payload models.ContactPayload) (int, error) {
	args := m.Called(ctx, payload)
	return args.Int(0), args.Error(1)
}

func (m *MockAteraTarget) UpdateContact(ctx context.Context, contactID int, payload models.ContactPayload) error {
	args := m.Called(ctx, contactID, payload)
	return args.Error(0)
}

func (m *MockAteraTarget) ListContractsForCustomer(ctx context.Context, customerID int) ([]models.AteraContract, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AteraContract), args.Error(1)
}

func (m *MockAteraTarget) CreateContract(ctx context.Context, payload models.ContractPayload) (int, error) {
	args := m.Called(ctx, payload)
	return args.Int(0), args.Error(1)
}

func (m *MockAteraTarget) ListTickets(ctx context.Context, since time.Time) ([]models.AteraTicket, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AteraTicket), args.Error(1)
}

// MockConflictLog mocks the duplicate-email side channel.
type MockConflictLog struct {
	mock.Mock
}

func (m *MockConflictLog) Record(customerID int, priorityCustomerID, email string) error {
	args := m.Called(customerID, priorityCustomerID, email)
	return args.Error(0)
}
