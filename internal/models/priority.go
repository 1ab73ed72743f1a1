package models

// PriorityCustomer is a customer record as returned by the Priority
// CUSTOMERS OData endpoint. CustName is the external identifier used as the
// cross-reference key in Atera; CustDes is the display name.
type PriorityCustomer struct {
	CustName  string `json:"CUSTNAME" validate:"required"`
	CustDes   string `json:"CUSTDES"`
	HostName  string `json:"HOSTNAME"`
	WTaxNum   string `json:"WTAXNUM"`
	Phone     string `json:"PHONE"`
	Fax       string `json:"FAX"`
	Address   string `json:"ADDRESS"`
	StateA    string `json:"STATEA"`
	StateName string `json:"STATENAME"`
	State     string `json:"STATE"`
	Zip       string `json:"ZIP"`
	// StatDes carries the customer status description ("Active" etc.).
	StatDes string `json:"STATDES"`
	// UDate is the last-modified timestamp. Priority may emit it with a
	// timezone offset or a trailing Z; empty when the endpoint omits it.
	UDate string `json:"UDATE"`
}

// PriorityContact is a contact record from the Priority PHONEBOOK endpoint.
// Any of the name fields may be empty; Email may be empty as well.
type PriorityContact struct {
	CustName    string `json:"CUSTNAME"`
	CustDes     string `json:"CUSTDES"`
	Email       string `json:"EMAIL"`
	Name        string `json:"NAME"`
	FirstName   string `json:"FIRSTNAME"`
	LastName    string `json:"LASTNAME"`
	PositionDes string `json:"POSITIONDES"`
	PhoneNum    string `json:"PHONENUM"`
	CellPhone   string `json:"CELLPHONE"`
}

// PriorityContract is a contract document from the Priority DOCUMENTS_Z
// endpoint. DocNo is unique per customer and is stored in Atera as the
// "Priority Contract Number" custom field.
type PriorityContract struct {
	CustName   string `json:"CUSTNAME"`
	CustDes    string `json:"CUSTDES"`
	DocNo      string `json:"DOCNO"`
	UDate      string `json:"UDATE"`
	ValidDate  string `json:"VALIDDATE"`
	ExpiryDate string `json:"EXPIRYDATE"`
	StatDes    string `json:"STATDES"`
	UniDesc    string `json:"UNI_DESC"`
}

// TicketCharge is the record posted to the Priority MARH_LOADATERA endpoint
// for one Atera ticket.
type TicketCharge struct {
	CustName string  `json:"CUSTNAME" validate:"required"`
	DocNo    string  `json:"DOCNO" validate:"required"`
	Quantity float64 `json:"TQUANT"`
	// Status and PaymentType are only populated in the
	// billable-hours-field variant of the ticket sync.
	Status      string `json:"STATDES,omitempty"`
	PaymentType string `json:"PAYTYPE,omitempty"`
}

// ODataResponse is the envelope Priority wraps list responses in.
type ODataResponse[T any] struct {
	Value []T `json:"value"`
}
