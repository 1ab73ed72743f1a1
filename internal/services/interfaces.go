package services

import (
	"context"
	"time"

	"github.com/eligro/erp-integrations/internal/models"
)

// Custom-field entity kinds on the Atera custom-values endpoint.
const (
	FieldKindCustomer = "customerfield"
	FieldKindContract = "contractfield"
	FieldKindTicket   = "ticketfield"
)

// Cross-reference and ticket custom-field names in Atera.
const (
	CustomerNumberField = "Priority Customer Number"
	ContractNumberField = "Priority Contract Number"
	BillableHoursField  = "Technician Billable Hours"
	PaymentTypeField    = "Payment Type"
)

// PrioritySource reads records from the Priority ERP and accepts ticket
// charges in the reverse direction.
type PrioritySource interface {
	ListCustomers(ctx context.Context) ([]models.PriorityCustomer, error)
	ListContacts(ctx context.Context) ([]models.PriorityContact, error)
	ListContracts(ctx context.Context) ([]models.PriorityContract, error)
	SubmitTicketCharge(ctx context.Context, charge models.TicketCharge) error
}

// AteraTarget reads and mutates records on the Atera side. ListCustomers
// with enrich=true pre-populates each customer's cross-reference value from
// the "Priority Customer Number" custom field. GetCustomField returns the
// empty string, not an error, when the field is absent.
type AteraTarget interface {
	ListCustomers(ctx context.Context, enrich bool) ([]models.AteraCustomer, error)
	GetCustomer(ctx context.Context, customerID int) (*models.AteraCustomer, error)
	CreateCustomer(ctx context.Context, payload models.CustomerPayload) (int, error)
	UpdateCustomer(ctx context.Context, customerID int, payload models.CustomerPayload) error

	GetCustomField(ctx context.Context, kind string, entityID int, fieldName string) (string, error)
	SetCustomField(ctx context.Context, kind string, entityID int, fieldName, value string) error

	ListContacts(ctx context.Context) ([]models.AteraContact, error)
	CreateContact(ctx context.Context, payload models.ContactPayload) (int, error)
	UpdateContact(ctx context.Context, contactID int, payload models.ContactPayload) error

	ListContractsForCustomer(ctx context.Context, customerID int) ([]models.AteraContract, error)
	CreateContract(ctx context.Context, payload models.ContractPayload) (int, error)

	ListTickets(ctx context.Context, since time.Time) ([]models.AteraTicket, error)
}

// ConflictLog is the durable side channel for duplicate-email conflicts
// that could not be auto-resolved.
type ConflictLog interface {
	Record(customerID int, priorityCustomerID, email string) error
}

// SyncResult summarizes what one reconciler did during a run.
type SyncResult struct {
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
	Conflicts int `json:"conflicts"`
	Errors    int `json:"errors"`
}
