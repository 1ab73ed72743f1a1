package models

// AteraCustomer is a customer record from the Atera customers endpoint.
// PriorityCustomerNumber is not part of the primary record; the client
// enriches it from the "Priority Customer Number" custom field. Empty means
// the cross-reference has never been written.
type AteraCustomer struct {
	CustomerID             int    `json:"CustomerID"`
	CustomerName           string `json:"CustomerName"`
	BusinessNumber         string `json:"BusinessNumber"`
	Domain                 string `json:"Domain"`
	Address                string `json:"Address"`
	City                   string `json:"City"`
	State                  string `json:"State"`
	Country                string `json:"Country"`
	Phone                  string `json:"Phone"`
	Fax                    string `json:"Fax"`
	ZipCodeStr             string `json:"ZipCodeStr"`
	PriorityCustomerNumber string `json:"-"`
}

// AteraContact is a contact record from the Atera contacts endpoint.
type AteraContact struct {
	EndUserID   int    `json:"EndUserID"`
	CustomerID  int    `json:"CustomerID"`
	Firstname   string `json:"Firstname"`
	Lastname    string `json:"Lastname"`
	Email       string `json:"Email"`
	JobTitle    string `json:"JobTitle"`
	Phone       string `json:"Phone"`
	MobilePhone string `json:"MobilePhone"`
}

// AteraContract is a contract record from the Atera contracts endpoint.
type AteraContract struct {
	ContractID   int    `json:"ContractID"`
	CustomerID   int    `json:"CustomerID"`
	ContractName string `json:"ContractName"`
	StartDate    string `json:"StartDate"`
	EndDate      string `json:"EndDate"`
	Active       bool   `json:"Active"`
}

// AteraTicket is a ticket record from the Atera tickets endpoint. Tickets
// flow the reverse direction: Atera is the source, Priority the destination.
type AteraTicket struct {
	TicketID               int    `json:"TicketID"`
	CustomerID             int    `json:"CustomerID"`
	TicketCreatedDate      string `json:"TicketCreatedDate"`
	TicketStatus           string `json:"TicketStatus"`
	OnSiteDurationMinutes  int    `json:"OnSiteDurationMinutes"`
	OffSiteDurationMinutes int    `json:"OffSiteDurationMinutes"`
}

// CustomerPayload is the outbound body for Atera customer create/update.
// Optional attributes are sent as empty strings or zeros, never omitted.
type CustomerPayload struct {
	CustomerName   string  `json:"CustomerName" validate:"required"`
	CreatedOn      string  `json:"CreatedOn,omitempty"`
	BusinessNumber string  `json:"BusinessNumber"`
	Domain         string  `json:"Domain"`
	Address        string  `json:"Address"`
	City           string  `json:"City"`
	State          string  `json:"State"`
	Country        string  `json:"Country"`
	Phone          string  `json:"Phone"`
	Fax            string  `json:"Fax"`
	Notes          string  `json:"Notes"`
	Links          string  `json:"Links"`
	Longitude      float64 `json:"Longitude"`
	Latitude       float64 `json:"Latitude"`
	ZipCodeStr     string  `json:"ZipCodeStr"`
}

// ContactPayload is the outbound body for Atera contact create/update.
// Phone fields are pointers: a sanitized number with no digits is sent as
// an explicit null, not an empty string.
type ContactPayload struct {
	Email           string  `json:"Email" validate:"required,email"`
	CustomerID      int     `json:"CustomerID,omitempty"`
	Firstname       string  `json:"Firstname"`
	Lastname        string  `json:"Lastname"`
	JobTitle        string  `json:"JobTitle"`
	Phone           *string `json:"Phone"`
	MobilePhone     *string `json:"MobilePhone"`
	IsContactPerson bool    `json:"IsContactPerson"`
	InIgnoreMode    bool    `json:"InIgnoreMode"`
	CreatedOn       string  `json:"CreatedOn,omitempty"`
}

// RetainerFlatFee is the fixed billing block Atera requires on contract
// creation.
type RetainerFlatFee struct {
	RateID        int    `json:"RateID"`
	Quantity      int    `json:"Quantity"`
	BillingPeriod string `json:"BillingPeriod"`
}

// ContractPayload is the outbound body for Atera contract creation. There
// is no contract update path.
type ContractPayload struct {
	ContractName            string          `json:"ContractName" validate:"required"`
	CustomerID              int             `json:"CustomerID" validate:"required"`
	StartDate               string          `json:"StartDate"`
	EndDate                 string          `json:"EndDate"`
	Active                  bool            `json:"Active"`
	Taxable                 bool            `json:"Taxable"`
	ContractType            string          `json:"ContractType"`
	RetainerFlatFeeContract RetainerFlatFee `json:"RetainerFlatFeeContract"`
}

// PagedResponse is the envelope Atera wraps list responses in.
type PagedResponse[T any] struct {
	Items      []T    `json:"items"`
	TotalPages int    `json:"totalPages"`
	Page       int    `json:"page"`
	NextLink   string `json:"nextLink"`
}

// CustomFieldValue is one element of the Atera custom-values response.
type CustomFieldValue struct {
	ValueAsString string `json:"ValueAsString"`
}

// ActionResponse is the body Atera returns from create operations.
type ActionResponse struct {
	ActionID int `json:"ActionID"`
}
