package priority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/models"
	"github.com/eligro/erp-integrations/internal/services"
)

const (
	customerSelectFields = "CUSTNAME,CUSTDES,HOSTNAME,WTAXNUM,PHONE,FAX,ADDRESS,STATEA,STATENAME,STATE,ZIP,STATDES,UDATE"
	contactSelectFields  = "CUSTNAME,CUSTDES,EMAIL,NAME,FIRSTNAME,LASTNAME,POSITIONDES,PHONENUM,CELLPHONE"
)

// Client talks to the Priority ERP OData API using basic authentication.
type Client struct {
	baseURL    string
	user       string
	password   string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new Priority API client.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Priority.APIURL, "/"),
		user:    cfg.Priority.User,
		password: cfg.Priority.Password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// ListCustomers fetches customers from the CUSTOMERS endpoint with the
// fixed field selection.
func (c *Client) ListCustomers(ctx context.Context) ([]models.PriorityCustomer, error) {
	var resp models.ODataResponse[models.PriorityCustomer]
	if err := c.get(ctx, "/CUSTOMERS?$select="+customerSelectFields, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// ListContacts fetches contacts from the PHONEBOOK endpoint.
func (c *Client) ListContacts(ctx context.Context) ([]models.PriorityContact, error) {
	var resp models.ODataResponse[models.PriorityContact]
	if err := c.get(ctx, "/PHONEBOOK?$select="+contactSelectFields, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// ListContracts fetches contract documents from the DOCUMENTS_Z endpoint.
// The pull-window filter is applied by the reconciler, not here.
func (c *Client) ListContracts(ctx context.Context) ([]models.PriorityContract, error) {
	var resp models.ODataResponse[models.PriorityContract]
	if err := c.get(ctx, "/DOCUMENTS_Z", &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// SubmitTicketCharge posts one ticket charge to the MARH_LOADATERA
// endpoint.
func (c *Client) SubmitTicketCharge(ctx context.Context, charge models.TicketCharge) error {
	encoded, err := json.Marshal(charge)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket charge: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/MARH_LOADATERA", bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("priority request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return &services.RemoteError{
			Op:         "POST /MARH_LOADATERA",
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.user, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("priority request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("path", path).
			WithField("status_code", resp.StatusCode).
			Error("Priority request returned non-200 status")
		return &services.RemoteError{
			Op:         "GET " + path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
