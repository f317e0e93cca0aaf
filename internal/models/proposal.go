// internal/models/proposal.go
package models

import "time"

// Proposal statuses.
const (
	ProposalStatusDraft         = "draft"
	ProposalStatusPendingReview = "pending_review"
	ProposalStatusApproved      = "approved"
	ProposalStatusSent          = "sent"
)

var ProposalStatuses = []string{ProposalStatusDraft, ProposalStatusPendingReview, ProposalStatusApproved, ProposalStatusSent}

// Proposal scores are stored as string-encoded integers.
type Proposal struct {
	ID                    string    `json:"id"`
	RFPID                 string    `json:"rfpId"`
	Content               string    `json:"content,omitempty"`
	QualityScore          string    `json:"qualityScore,omitempty"`
	Completeness          string    `json:"completeness,omitempty"`
	Relevance             string    `json:"relevance,omitempty"`
	Clarity               string    `json:"clarity,omitempty"`
	CompetitiveDiff       string    `json:"competitiveDiff,omitempty"`
	Alignment             string    `json:"alignment,omitempty"`
	ImprovementSuggestion string    `json:"improvementSuggestion,omitempty"`
	Status                string    `json:"status"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type CreateProposalInput struct {
	RFPID   string `json:"rfpId"`
	Content string `json:"content,omitempty"`
}

type UpdateProposalInput struct {
	Content               *string `json:"content,omitempty"`
	QualityScore          *string `json:"qualityScore,omitempty"`
	Completeness          *string `json:"completeness,omitempty"`
	Relevance             *string `json:"relevance,omitempty"`
	Clarity               *string `json:"clarity,omitempty"`
	CompetitiveDiff       *string `json:"competitiveDiff,omitempty"`
	Alignment             *string `json:"alignment,omitempty"`
	ImprovementSuggestion *string `json:"improvementSuggestion,omitempty"`
	Status                *string `json:"status,omitempty"`
}

// QualityScores is the outcome of a proposal review, each score on a 0-100 scale.
type QualityScores struct {
	QualityScore          float64 `json:"qualityScore"`
	Completeness          float64 `json:"completeness"`
	Relevance             float64 `json:"relevance"`
	Clarity               float64 `json:"clarity"`
	CompetitiveDiff       float64 `json:"competitiveDiff"`
	Alignment             float64 `json:"alignment"`
	ImprovementSuggestion string  `json:"improvementSuggestion"`
}
