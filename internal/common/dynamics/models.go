package dynamics

import "fmt"

// Lead source and quality option-set values used for RFP-originated leads.
const (
	LeadSourceWeb   = 8
	LeadQualityWarm = 2
)

// Sales process stages written to opportunity.stepname.
const (
	StageClose   = "Close"
	StagePropose = "Propose"
)

// Lead is the payload for the leads entity set. Every field is optional so
// the same type serves partial updates.
type Lead struct {
	Subject            string   `json:"subject,omitempty"`
	CompanyName        string   `json:"companyname,omitempty"`
	FirstName          string   `json:"firstname,omitempty"`
	LastName           string   `json:"lastname,omitempty"`
	EmailAddress1      string   `json:"emailaddress1,omitempty"`
	Telephone1         string   `json:"telephone1,omitempty"`
	Description        string   `json:"description,omitempty"`
	EstimatedValue     *float64 `json:"estimatedvalue,omitempty"`
	EstimatedCloseDate string   `json:"estimatedclosedate,omitempty"`
	LeadSourceCode     int      `json:"leadsourcecode,omitempty"`
	LeadQualityCode    int      `json:"leadqualitycode,omitempty"`
}

// Opportunity is the payload for the opportunities entity set.
type Opportunity struct {
	Name               string   `json:"name,omitempty"`
	Description        string   `json:"description,omitempty"`
	EstimatedValue     *float64 `json:"estimatedvalue,omitempty"`
	EstimatedCloseDate string   `json:"estimatedclosedate,omitempty"`
	BudgetAmount       *float64 `json:"budgetamount,omitempty"`
	StepName           string   `json:"stepname,omitempty"`
	CustomerAccount    string   `json:"customerid_account@odata.bind,omitempty"`
}

// AccountBinding formats an account id as an OData navigation binding.
func AccountBinding(accountID string) string {
	return fmt.Sprintf("/accounts(%s)", accountID)
}

// Response is the uniform result of every CRM call. Failures never surface
// as Go errors.
type Response struct {
	Success bool        `json:"success"`
	ID      string      `json:"id,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorDetails is attached to failed responses that reached the CRM.
type ErrorDetails struct {
	Status int         `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Failure builds an unsuccessful Response with no details.
func Failure(message string) *Response {
	return &Response{Success: false, Error: message}
}

type apiErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
