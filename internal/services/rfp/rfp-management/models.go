// internal/services/rfp/rfp-management/models.go
package rfpmanagement

import (
	"context"

	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/models"
)

// Repository is the persistence surface used by the service.
type Repository interface {
	ListRFPs(ctx context.Context) ([]models.RFP, error)
	GetRFPByID(ctx context.Context, id string) (*models.RFP, error)
	CreateRFP(ctx context.Context, rfp *models.RFP) (*models.RFP, error)
	UpdateRFP(ctx context.Context, id string, input models.UpdateRFPInput) error

	GetProposalByRFPID(ctx context.Context, rfpID string) (*models.Proposal, error)
	CreateProposal(ctx context.Context, p *models.Proposal) (*models.Proposal, error)
	UpdateProposal(ctx context.Context, id string, input models.UpdateProposalInput) error

	ListKnowledgeBase(ctx context.Context) ([]models.KnowledgeBaseEntry, error)
	SearchKnowledgeBase(ctx context.Context, query string, limit int) ([]models.KnowledgeBaseEntry, error)
	CreateKnowledgeBase(ctx context.Context, e *models.KnowledgeBaseEntry) (*models.KnowledgeBaseEntry, error)

	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	GetTeamMemberByID(ctx context.Context, id string) (*models.TeamMember, error)
	CreateTeamMember(ctx context.Context, m *models.TeamMember) (*models.TeamMember, error)
	ListAssignmentsByRFPID(ctx context.Context, rfpID string) ([]models.RFPAssignment, error)
	CreateAssignment(ctx context.Context, a *models.RFPAssignment) (*models.RFPAssignment, error)
}

// KnowledgeIndex is a full-text index over knowledge base entries.
type KnowledgeIndex interface {
	Index(ctx context.Context, entry *models.KnowledgeBaseEntry) error
	Search(ctx context.Context, query string, size int) ([]models.KnowledgeBaseEntry, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ServiceDependencies wires the service. Index and Mailer are optional.
type ServiceDependencies struct {
	Repo   Repository
	Index  KnowledgeIndex
	Mailer Mailer
	Logger logger.Logger
}

type GenerateResponseInput struct {
	RFPID      string `json:"rfpId"`
	RFPContent string `json:"rfpContent"`
}

// GeneratedResponse is a drafted proposal with its review scores.
type GeneratedResponse struct {
	Content         string `json:"content"`
	QualityScore    string `json:"qualityScore"`
	Completeness    string `json:"completeness"`
	Relevance       string `json:"relevance"`
	Clarity         string `json:"clarity"`
	CompetitiveDiff string `json:"competitiveDiff"`
	Alignment       string `json:"alignment"`
}

type SuccessResult struct {
	Success bool `json:"success"`
}
