package atera

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eligro/erp-integrations/internal/config"
	"github.com/eligro/erp-integrations/internal/logger"
	"github.com/eligro/erp-integrations/internal/models"
	"github.com/eligro/erp-integrations/internal/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

func newTestClient(t *testing.T, router *mux.Router) *Client {
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Atera:   config.AteraConfig{APIURL: server.URL, APIKey: testAPIKey},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
	return NewClient(cfg, logger.NewLogger(cfg))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestListCustomers_PaginatesAndStopsOnEmptyPage(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.Header.Get("X-Api-Key"))

		switch r.URL.Query().Get("page") {
		case "1":
			writeJSON(w, models.PagedResponse[models.AteraCustomer]{
				Items:      []models.AteraCustomer{{CustomerID: 1, CustomerName: "One"}},
				TotalPages: 99, // deliberately wrong; the empty page must still stop the loop
				Page:       1,
			})
		case "2":
			writeJSON(w, models.PagedResponse[models.AteraCustomer]{
				Items:      []models.AteraCustomer{{CustomerID: 2, CustomerName: "Two"}},
				TotalPages: 99,
				Page:       2,
			})
		default:
			writeJSON(w, models.PagedResponse[models.AteraCustomer]{TotalPages: 99})
		}
	})

	client := newTestClient(t, router)
	customers, err := client.ListCustomers(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, 1, customers[0].CustomerID)
	assert.Equal(t, 2, customers[1].CustomerID)
}

func TestListCustomers_StopsOnMatchingTotalPages(t *testing.T) {
	pagesServed := 0
	router := mux.NewRouter()
	router.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		writeJSON(w, models.PagedResponse[models.AteraCustomer]{
			Items:      []models.AteraCustomer{{CustomerID: pagesServed}},
			TotalPages: 1,
			Page:       1,
		})
	})

	client := newTestClient(t, router)
	customers, err := client.ListCustomers(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, 1, pagesServed)
}

func TestListCustomers_EnrichAttachesCrossReference(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/customers", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			writeJSON(w, models.PagedResponse[models.AteraCustomer]{})
			return
		}
		writeJSON(w, models.PagedResponse[models.AteraCustomer]{
			Items: []models.AteraCustomer{
				{CustomerID: 1, CustomerName: "Mapped"},
				{CustomerID: 2, CustomerName: "Unmapped"},
			},
			TotalPages: 1,
			Page:       1,
		})
	})
	router.HandleFunc("/customvalues/{kind}/{id}/{field}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		assert.Equal(t, "customerfield", vars["kind"])
		assert.Equal(t, "Priority Customer Number", vars["field"])

		if vars["id"] == "1" {
			writeJSON(w, []models.CustomFieldValue{{ValueAsString: "CUST001"}})
			return
		}
		// Customer 2 has never been cross-referenced.
		http.Error(w, "not found", http.StatusNotFound)
	})

	client := newTestClient(t, router)
	customers, err := client.ListCustomers(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "CUST001", customers[0].PriorityCustomerNumber)
	assert.Equal(t, "", customers[1].PriorityCustomerNumber)
}

func TestGetCustomer_NotFoundIsNotAnError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		if mux.Vars(r)["id"] == "1" {
			writeJSON(w, models.AteraCustomer{CustomerID: 1, CustomerName: "One"})
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	client := newTestClient(t, router)

	customer, err := client.GetCustomer(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "One", customer.CustomerName)

	missing, err := client.GetCustomer(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetCustomField_AbsentValuesReturnEmpty(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/customvalues/{kind}/{id}/{field}", func(w http.ResponseWriter, r *http.Request) {
		switch mux.Vars(r)["id"] {
		case "1":
			writeJSON(w, []models.CustomFieldValue{{ValueAsString: "CUST001"}})
		case "2":
			writeJSON(w, []models.CustomFieldValue{})
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	})

	client := newTestClient(t, router)

	value, err := client.GetCustomField(context.Background(), services.FieldKindCustomer, 1, services.CustomerNumberField)
	require.NoError(t, err)
	assert.Equal(t, "CUST001", value)

	empty, err := client.GetCustomField(context.Background(), services.FieldKindCustomer, 2, services.CustomerNumberField)
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	missing, err := client.GetCustomField(context.Background(), services.FieldKindCustomer, 3, services.CustomerNumberField)
	require.NoError(t, err)
	assert.Equal(t, "", missing)
}

func TestSetCustomField_EscapesFieldNameAndSendsValue(t *testing.T) {
	var gotEscapedPath, gotValue string
	router := mux.NewRouter()
	router.HandleFunc("/customvalues/{kind}/{id}/{field}", func(w http.ResponseWriter, r *http.Request) {
		gotEscapedPath = r.URL.EscapedPath()
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotValue = body["Value"]
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodPut)

	client := newTestClient(t, router)
	err := client.SetCustomField(context.Background(), services.FieldKindCustomer, 7, services.CustomerNumberField, "CUST007")
	require.NoError(t, err)
	assert.Equal(t, "/customvalues/customerfield/7/Priority%20Customer%20Number", gotEscapedPath)
	assert.Equal(t, "CUST007", gotValue)
}

func TestCreateContact_ConflictMapsToDuplicateEmail(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/contacts", func(w http.ResponseWriter, r *http.Request) {
		var payload models.ContactPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload.Email == "taken@corp.com" {
			http.Error(w, "email already exists", http.StatusConflict)
			return
		}
		writeJSON(w, models.ActionResponse{ActionID: 42})
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)

	id, err := client.CreateContact(context.Background(), models.ContactPayload{Email: "fresh@corp.com"})
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	_, err = client.CreateContact(context.Background(), models.ContactPayload{Email: "taken@corp.com"})
	assert.True(t, errors.Is(err, services.ErrDuplicateEmail))
}

func TestCreateContact_OtherFailuresSurfaceRemoteError(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/contacts", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}).Methods(http.MethodPost)

	client := newTestClient(t, router)
	_, err := client.CreateContact(context.Background(), models.ContactPayload{Email: "x@corp.com"})

	var remoteErr *services.RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusInternalServerError, remoteErr.StatusCode)
}

func TestListTickets_FiltersByCreationDate(t *testing.T) {
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	router := mux.NewRouter()
	router.HandleFunc("/tickets", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			writeJSON(w, models.PagedResponse[models.AteraTicket]{})
			return
		}
		writeJSON(w, models.PagedResponse[models.AteraTicket]{
			Items: []models.AteraTicket{
				{TicketID: 1, TicketCreatedDate: "2024-06-10T08:00:00"},       // naive, in window
				{TicketID: 2, TicketCreatedDate: "2024-06-10T08:00:00Z"},      // zulu, in window
				{TicketID: 3, TicketCreatedDate: "2024-06-10T08:00:00+03:00"}, // offset, in window
				{TicketID: 4, TicketCreatedDate: "2024-05-01T08:00:00"},       // too old
				{TicketID: 5, TicketCreatedDate: ""},                          // missing date
				{TicketID: 6, TicketCreatedDate: "garbage"},                   // unparsable
			},
			Page: 1,
		})
	})

	client := newTestClient(t, router)
	tickets, err := client.ListTickets(context.Background(), since)
	require.NoError(t, err)

	var ids []int
	for _, ticket := range tickets {
		ids = append(ids, ticket.TicketID)
	}
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestListContractsForCustomer_FollowsNextLink(t *testing.T) {
	router := mux.NewRouter()
	router.HandleFunc("/contracts/customer/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "9", mux.Vars(r)["id"])

		if r.URL.Query().Get("page") == "1" {
			writeJSON(w, models.PagedResponse[models.AteraContract]{
				Items:    []models.AteraContract{{ContractID: 10}},
				Page:     1,
				NextLink: fmt.Sprintf("/contracts/customer/9?page=%d", 2),
			})
			return
		}
		writeJSON(w, models.PagedResponse[models.AteraContract]{
			Items: []models.AteraContract{{ContractID: 11}},
			Page:  2,
		})
	})

	client := newTestClient(t, router)
	contracts, err := client.ListContractsForCustomer(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, contracts, 2)
	assert.Equal(t, 10, contracts[0].ContractID)
	assert.Equal(t, 11, contracts[1].ContractID)
}
