package atera

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/models"
	"github.com/eligro/erp-integrations/internal/services"
)

const (
	customersPageSize = 50
	contactsPageSize  = 100
	ticketsPageSize   = 50
	contractsPageSize = 50
)

// Client talks to the Atera REST API. All list endpoints paginate; loops
// stop on an empty page even when the declared page count disagrees.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new Atera API client.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Atera.APIURL, "/"),
		apiKey:  cfg.Atera.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// ListCustomers fetches every customer. With enrich set, each customer's
// "Priority Customer Number" custom field is fetched and attached.
func (c *Client) ListCustomers(ctx context.Context, enrich bool) ([]models.AteraCustomer, error) {
	var customers []models.AteraCustomer

	for page := 1; ; page++ {
		c.logger.WithField("page", page).Info("Fetching customers from Atera")

		var resp models.PagedResponse[models.AteraCustomer]
		path := fmt.Sprintf("/customers?page=%d&itemsInPage=%d", page, customersPageSize)
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		customers = append(customers, resp.Items...)
		if len(resp.Items) == 0 || resp.TotalPages == page {
			break
		}
	}

	if !enrich {
		return customers, nil
	}

	for i := range customers {
		if i == 0 || (i+1)%100 == 0 {
			c.logger.WithField("progress", fmt.Sprintf("%d/%d", i+1, len(customers))).
				Info("Fetching customer custom fields")
		}
		value, err := c.GetCustomField(ctx, services.FieldKindCustomer, customers[i].CustomerID, services.CustomerNumberField)
		if err != nil {
			c.logger.WithError(err).
				WithField("atera_customer_id", customers[i].CustomerID).
				Error("Failed to fetch customer cross-reference field")
			continue
		}
		customers[i].PriorityCustomerNumber = value
	}

	return customers, nil
}

// GetCustomer fetches a single customer. A 404 returns nil without error.
func (c *Client) GetCustomer(ctx context.Context, customerID int) (*models.AteraCustomer, error) {
	var customer models.AteraCustomer
	err := c.do(ctx, http.MethodGet, "/customers/"+strconv.Itoa(customerID), nil, &customer)
	if err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer creates a customer and returns its Atera id.
func (c *Client) CreateCustomer(ctx context.Context, payload models.CustomerPayload) (int, error) {
	var resp models.ActionResponse
	if err := c.do(ctx, http.MethodPost, "/customers", payload, &resp); err != nil {
		return 0, err
	}
	return resp.ActionID, nil
}

// UpdateCustomer updates an existing customer in place.
func (c *Client) UpdateCustomer(ctx context.Context, customerID int, payload models.CustomerPayload) error {
	return c.do(ctx, http.MethodPut, "/customers/"+strconv.Itoa(customerID), payload, nil)
}

// GetCustomField reads a custom field value for an entity. Absent fields
// (404 or an empty value list) return the empty string.
func (c *Client) GetCustomField(ctx context.Context, kind string, entityID int, fieldName string) (string, error) {
	var values []models.CustomFieldValue
	path := customFieldPath(kind, entityID, fieldName)
	if err := c.do(ctx, http.MethodGet, path, nil, &values); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return "", nil
		}
		return "", err
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0].ValueAsString, nil
}

// SetCustomField writes a custom field value on an entity.
func (c *Client) SetCustomField(ctx context.Context, kind string, entityID int, fieldName, value string) error {
	body := map[string]string{"Value": value}
	return c.do(ctx, http.MethodPut, customFieldPath(kind, entityID, fieldName), body, nil)
}

// ListContacts fetches every contact.
func (c *Client) ListContacts(ctx context.Context) ([]models.AteraContact, error) {
	var contacts []models.AteraContact

	for page := 1; ; page++ {
		var resp models.PagedResponse[models.AteraContact]
		path := fmt.Sprintf("/contacts?page=%d&itemsInPage=%d", page, contactsPageSize)
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		contacts = append(contacts, resp.Items...)
		if len(resp.Items) == 0 || resp.NextLink == "" {
			break
		}
	}
	return contacts, nil
}

// CreateContact creates a contact. A 409 from Atera means the email is
// already taken and surfaces as services.ErrDuplicateEmail.
func (c *Client) CreateContact(ctx context.Context, payload models.ContactPayload) (int, error) {
	var resp models.ActionResponse
	if err := c.do(ctx, http.MethodPost, "/contacts", payload, &resp); err != nil {
		if isStatus(err, http.StatusConflict) {
			return 0, fmt.Errorf("create contact %q: %w", payload.Email, services.ErrDuplicateEmail)
		}
		return 0, err
	}
	return resp.ActionID, nil
}

// UpdateContact updates an existing contact in place.
func (c *Client) UpdateContact(ctx context.Context, contactID int, payload models.ContactPayload) error {
	return c.do(ctx, http.MethodPost, "/contacts/"+strconv.Itoa(contactID), payload, nil)
}

// ListContractsForCustomer fetches every contract Atera holds for one
// customer.
func (c *Client) ListContractsForCustomer(ctx context.Context, customerID int) ([]models.AteraContract, error) {
	var contracts []models.AteraContract

	for page := 1; ; page++ {
		var resp models.PagedResponse[models.AteraContract]
		path := fmt.Sprintf("/contracts/customer/%d?page=%d&itemsInPage=%d", customerID, page, contractsPageSize)
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}
		contracts = append(contracts, resp.Items...)
		if resp.NextLink == "" {
			break
		}
	}
	return contracts, nil
}

// CreateContract creates a contract and returns its Atera id.
func (c *Client) CreateContract(ctx context.Context, payload models.ContractPayload) (int, error) {
	var resp models.ActionResponse
	if err := c.do(ctx, http.MethodPost, "/contracts", payload, &resp); err != nil {
		return 0, err
	}
	return resp.ActionID, nil
}

// ListTickets fetches tickets created at or after the given instant.
// Timestamps arrive naive, 'Z'-suffixed, or offset-suffixed; all three
// compare on the same naive axis.
func (c *Client) ListTickets(ctx context.Context, since time.Time) ([]models.AteraTicket, error) {
	var tickets []models.AteraTicket

	for page := 1; ; page++ {
		var resp models.PagedResponse[models.AteraTicket]
		path := fmt.Sprintf("/tickets?page=%d&itemsInPage=%d", page, ticketsPageSize)
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}
		for _, ticket := range resp.Items {
			if ticket.TicketCreatedDate == "" {
				continue
			}
			created, err := services.ParseFlexibleTime(ticket.TicketCreatedDate)
			if err != nil {
				c.logger.WithError(err).WithField("ticket_id", ticket.TicketID).
					Error("Unparsable ticket creation date, skipping")
				continue
			}
			if !created.Before(since) {
				tickets = append(tickets, ticket)
			}
		}
		if resp.NextLink == "" {
			break
		}
	}
	return tickets, nil
}

// do executes one API call. Non-2xx responses come back as
// *services.RemoteError carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("atera request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &services.RemoteError{
			Op:         method + " " + path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func customFieldPath(kind string, entityID int, fieldName string) string {
	return fmt.Sprintf("/customvalues/%s/%d/%s", kind, entityID, url.PathEscape(fieldName))
}

func isStatus(err error, status int) bool {
	var remoteErr *services.RemoteError
	return errors.As(err, &remoteErr) && remoteErr.StatusCode == status
}
