package rfpmanagement

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rfp-dashboard/internal/models"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) ListRFPs(ctx context.Context) ([]models.RFP, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.RFP)
	return v, args.Error(1)
}

func (m *mockRepo) GetRFPByID(ctx context.Context, id string) (*models.RFP, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.RFP)
	return v, args.Error(1)
}

func (m *mockRepo) CreateRFP(ctx context.Context, rfp *models.RFP) (*models.RFP, error) {
	args := m.Called(ctx, rfp)
	v, _ := args.Get(0).(*models.RFP)
	return v, args.Error(1)
}

func (m *mockRepo) UpdateRFP(ctx context.Context, id string, input models.UpdateRFPInput) error {
	return m.Called(ctx, id, input).Error(0)
}

func (m *mockRepo) GetProposalByRFPID(ctx context.Context, rfpID string) (*models.Proposal, error) {
	args := m.Called(ctx, rfpID)
	v, _ := args.Get(0).(*models.Proposal)
	return v, args.Error(1)
}

func (m *mockRepo) CreateProposal(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	args := m.Called(ctx, p)
	v, _ := args.Get(0).(*models.Proposal)
	return v, args.Error(1)
}

func (m *mockRepo) UpdateProposal(ctx context.Context, id string, input models.UpdateProposalInput) error {
	return m.Called(ctx, id, input).Error(0)
}

func (m *mockRepo) ListKnowledgeBase(ctx context.Context) ([]models.KnowledgeBaseEntry, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.KnowledgeBaseEntry)
	return v, args.Error(1)
}

func (m *mockRepo) SearchKnowledgeBase(ctx context.Context, query string, limit int) ([]models.KnowledgeBaseEntry, error) {
	args := m.Called(ctx, query, limit)
	v, _ := args.Get(0).([]models.KnowledgeBaseEntry)
	return v, args.Error(1)
}

func (m *mockRepo) CreateKnowledgeBase(ctx context.Context, e *models.KnowledgeBaseEntry) (*models.KnowledgeBaseEntry, error) {
	args := m.Called(ctx, e)
	v, _ := args.Get(0).(*models.KnowledgeBaseEntry)
	return v, args.Error(1)
}

func (m *mockRepo) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).([]models.TeamMember)
	return v, args.Error(1)
}

func (m *mockRepo) GetTeamMemberByID(ctx context.Context, id string) (*models.TeamMember, error) {
	args := m.Called(ctx, id)
	v, _ := args.Get(0).(*models.TeamMember)
	return v, args.Error(1)
}

func (m *mockRepo) CreateTeamMember(ctx context.Context, member *models.TeamMember) (*models.TeamMember, error) {
	args := m.Called(ctx, member)
	v, _ := args.Get(0).(*models.TeamMember)
	return v, args.Error(1)
}

func (m *mockRepo) ListAssignmentsByRFPID(ctx context.Context, rfpID string) ([]models.RFPAssignment, error) {
	args := m.Called(ctx, rfpID)
	v, _ := args.Get(0).([]models.RFPAssignment)
	return v, args.Error(1)
}

func (m *mockRepo) CreateAssignment(ctx context.Context, a *models.RFPAssignment) (*models.RFPAssignment, error) {
	args := m.Called(ctx, a)
	v, _ := args.Get(0).(*models.RFPAssignment)
	return v, args.Error(1)
}

type mockIndex struct{ mock.Mock }

func (m *mockIndex) Index(ctx context.Context, entry *models.KnowledgeBaseEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockIndex) Search(ctx context.Context, query string, size int) ([]models.KnowledgeBaseEntry, error) {
	args := m.Called(ctx, query, size)
	v, _ := args.Get(0).([]models.KnowledgeBaseEntry)
	return v, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}
