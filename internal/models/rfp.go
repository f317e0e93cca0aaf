// internal/models/rfp.go
package models

import "time"

// RFP statuses.
const (
	RFPStatusNew         = "new"
	RFPStatusInProgress  = "in_progress"
	RFPStatusUnderReview = "under_review"
	RFPStatusCompleted   = "completed"
)

// RFPStatuses lists every valid RFP status.
var RFPStatuses = []string{RFPStatusNew, RFPStatusInProgress, RFPStatusUnderReview, RFPStatusCompleted}

type RFP struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Company            string     `json:"company"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	Value              string     `json:"value,omitempty"`
	Status             string     `json:"status"`
	Progress           string     `json:"progress"`
	Owner              string     `json:"owner,omitempty"`
	RFPDocumentURL     string     `json:"rfpDocumentUrl,omitempty"`
	RFPDocumentName    string     `json:"rfpDocumentName,omitempty"`
	ExtractedQuestions *string    `json:"extractedQuestions,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// HasExtractedQuestions reports whether question extraction has produced text.
func (r *RFP) HasExtractedQuestions() bool {
	return r.ExtractedQuestions != nil && *r.ExtractedQuestions != ""
}

type CreateRFPInput struct {
	Title   string    `json:"title"`
	Company string    `json:"company"`
	DueDate time.Time `json:"dueDate"`
	Value   string    `json:"value,omitempty"`
	Owner   string    `json:"owner,omitempty"`
}

// UpdateRFPInput is a partial update; nil fields are left untouched.
type UpdateRFPInput struct {
	Title              *string    `json:"title,omitempty"`
	Company            *string    `json:"company,omitempty"`
	DueDate            *time.Time `json:"dueDate,omitempty"`
	Value              *string    `json:"value,omitempty"`
	Status             *string    `json:"status,omitempty"`
	Progress           *string    `json:"progress,omitempty"`
	Owner              *string    `json:"owner,omitempty"`
	RFPDocumentURL     *string    `json:"rfpDocumentUrl,omitempty"`
	RFPDocumentName    *string    `json:"rfpDocumentName,omitempty"`
	ExtractedQuestions *string    `json:"extractedQuestions,omitempty"`
}

// ExtractedQuestion is one requirement pulled out of an RFP document.
type ExtractedQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}
