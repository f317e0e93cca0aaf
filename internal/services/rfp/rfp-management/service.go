// internal/services/rfp/rfp-management/service.go
package rfpmanagement

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/models"
)

// Fixed review scores attached to every generated draft.
const (
	generatedQualityScore    = "87"
	generatedCompleteness    = "92"
	generatedRelevance       = "95"
	generatedClarity         = "88"
	generatedCompetitiveDiff = "75"
	generatedAlignment       = "90"
)

const initialScore = "0"

type Service struct {
	config *Config
	repo   Repository
	index  KnowledgeIndex
	mailer Mailer
	logger logger.Logger
	newID  func() string
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config: config,
		repo:   deps.Repo,
		index:  deps.Index,
		mailer: deps.Mailer,
		logger: log,
		newID:  uuid.NewString,
	}
}

// ==========================================
// RFPs
// ==========================================

func (s *Service) ListRFPs(ctx context.Context) ([]models.RFP, error) {
	return s.repo.ListRFPs(ctx)
}

func (s *Service) GetRFP(ctx context.Context, id string) (*models.RFP, error) {
	rfp, err := s.repo.GetRFPByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, errors.NewRFPNotFoundError(id)
	}
	return rfp, nil
}

// CreateRFP stores a new RFP with status new and zero progress.
func (s *Service) CreateRFP(ctx context.Context, input models.CreateRFPInput) (*models.RFP, error) {
	due := input.DueDate
	rfp := &models.RFP{
		ID:       s.newID(),
		Title:    input.Title,
		Company:  input.Company,
		DueDate:  &due,
		Value:    input.Value,
		Owner:    input.Owner,
		Status:   models.RFPStatusNew,
		Progress: "0",
	}

	created, err := s.repo.CreateRFP(ctx, rfp)
	if err != nil {
		return nil, err
	}
	s.logger.Info("RFP created", map[string]interface{}{"rfpId": created.ID, "company": created.Company})
	return created, nil
}

func (s *Service) UpdateRFP(ctx context.Context, id string, input models.UpdateRFPInput) (*SuccessResult, error) {
	if err := s.repo.UpdateRFP(ctx, id, input); err != nil {
		return nil, err
	}
	return &SuccessResult{Success: true}, nil
}

// ==========================================
// Proposals
// ==========================================

// GetProposalByRFPID returns nil without error when the RFP has no proposal.
func (s *Service) GetProposalByRFPID(ctx context.Context, rfpID string) (*models.Proposal, error) {
	return s.repo.GetProposalByRFPID(ctx, rfpID)
}

func (s *Service) CreateProposal(ctx context.Context, input models.CreateProposalInput) (*models.Proposal, error) {
	proposal := &models.Proposal{
		ID:              s.newID(),
		RFPID:           input.RFPID,
		Content:         input.Content,
		Status:          models.ProposalStatusDraft,
		QualityScore:    initialScore,
		Completeness:    initialScore,
		Relevance:       initialScore,
		Clarity:         initialScore,
		CompetitiveDiff: initialScore,
		Alignment:       initialScore,
	}
	return s.repo.CreateProposal(ctx, proposal)
}

func (s *Service) UpdateProposal(ctx context.Context, id string, input models.UpdateProposalInput) (*SuccessResult, error) {
	if err := s.repo.UpdateProposal(ctx, id, input); err != nil {
		return nil, err
	}
	return &SuccessResult{Success: true}, nil
}

// GenerateResponse drafts a templated proposal letter for the RFP content.
// Nothing is persisted.
func (s *Service) GenerateResponse(ctx context.Context, input GenerateResponseInput) *GeneratedResponse {
	return &GeneratedResponse{
		Content:         fmt.Sprintf(responseTemplate, input.RFPContent),
		QualityScore:    generatedQualityScore,
		Completeness:    generatedCompleteness,
		Relevance:       generatedRelevance,
		Clarity:         generatedClarity,
		CompetitiveDiff: generatedCompetitiveDiff,
		Alignment:       generatedAlignment,
	}
}

// ==========================================
// Knowledge base
// ==========================================

func (s *Service) ListKnowledgeBase(ctx context.Context) ([]models.KnowledgeBaseEntry, error) {
	return s.repo.ListKnowledgeBase(ctx)
}

// CreateKnowledgeBase stores the entry and, when an index is configured,
// indexes it. Index failures are logged only.
func (s *Service) CreateKnowledgeBase(ctx context.Context, input models.CreateKnowledgeBaseInput) (*models.KnowledgeBaseEntry, error) {
	entry := &models.KnowledgeBaseEntry{
		ID:       s.newID(),
		Title:    input.Title,
		Category: input.Category,
		Content:  input.Content,
		FileURL:  input.FileURL,
		FileType: input.FileType,
		FileSize: input.FileSize,
	}

	created, err := s.repo.CreateKnowledgeBase(ctx, entry)
	if err != nil {
		return nil, err
	}

	if s.index != nil {
		indexCtx, cancel := context.WithTimeout(ctx, s.config.NotifyTimeout)
		defer cancel()
		if err := s.index.Index(indexCtx, created); err != nil {
			s.logger.Warn("Failed to index knowledge base entry", map[string]interface{}{
				"entryId": created.ID,
				"error":   err.Error(),
			})
		}
	}
	return created, nil
}

// SearchKnowledgeBase queries the full-text index and falls back to the
// database when no index is configured or the index query fails.
func (s *Service) SearchKnowledgeBase(ctx context.Context, query string) ([]models.KnowledgeBaseEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.ListKnowledgeBase(ctx)
	}

	if s.index != nil {
		entries, err := s.index.Search(ctx, query, s.config.SearchLimit)
		if err == nil {
			return entries, nil
		}
		s.logger.Warn("Knowledge base index search failed, using database", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
	}
	return s.repo.SearchKnowledgeBase(ctx, query, s.config.SearchLimit)
}

// ==========================================
// Team and assignments
// ==========================================

func (s *Service) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	return s.repo.ListTeamMembers(ctx)
}

// CreateTeamMember adds a member with status offline.
func (s *Service) CreateTeamMember(ctx context.Context, input models.CreateTeamMemberInput) (*models.TeamMember, error) {
	member := &models.TeamMember{
		ID:     s.newID(),
		Name:   input.Name,
		Role:   input.Role,
		Email:  input.Email,
		Status: models.MemberStatusOffline,
	}
	return s.repo.CreateTeamMember(ctx, member)
}

func (s *Service) ListAssignments(ctx context.Context, rfpID string) ([]models.RFPAssignment, error) {
	return s.repo.ListAssignmentsByRFPID(ctx, rfpID)
}

// CreateAssignment stores the assignment and e-mails the member when a
// mailer is configured and the member has an address.
func (s *Service) CreateAssignment(ctx context.Context, input models.CreateAssignmentInput) (*models.RFPAssignment, error) {
	assignment := &models.RFPAssignment{
		ID:       s.newID(),
		RFPID:    input.RFPID,
		MemberID: input.MemberID,
	}

	created, err := s.repo.CreateAssignment(ctx, assignment)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		s.notifyAssignment(ctx, created)
	}
	return created, nil
}

func (s *Service) notifyAssignment(ctx context.Context, a *models.RFPAssignment) {
	ctx, cancel := context.WithTimeout(ctx, s.config.NotifyTimeout)
	defer cancel()

	member, err := s.repo.GetTeamMemberByID(ctx, a.MemberID)
	if err != nil || member == nil || member.Email == "" {
		return
	}
	rfp, err := s.repo.GetRFPByID(ctx, a.RFPID)
	if err != nil || rfp == nil {
		return
	}

	subject := fmt.Sprintf("You have been assigned to %s", rfp.Title)
	body := assignmentBody(member, rfp, s.config.DashboardURL)
	if err := s.mailer.Send(ctx, member.Email, subject, body); err != nil {
		s.logger.Warn("Failed to send assignment e-mail", map[string]interface{}{
			"assignmentId": a.ID,
			"memberId":     member.ID,
			"error":        err.Error(),
		})
		return
	}
	s.logger.Info("Assignment e-mail sent", map[string]interface{}{"assignmentId": a.ID, "memberId": member.ID})
}

func assignmentBody(member *models.TeamMember, rfp *models.RFP, dashboardURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", member.Name)
	fmt.Fprintf(&b, "You have been assigned to the RFP \"%s\" from %s.\n", rfp.Title, rfp.Company)
	if rfp.DueDate != nil && !rfp.DueDate.IsZero() {
		fmt.Fprintf(&b, "Due date: %s\n", rfp.DueDate.Format("January 2, 2006"))
	}
	if dashboardURL != "" {
		fmt.Fprintf(&b, "\nOpen it here: %s/rfps/%s\n", strings.TrimRight(dashboardURL, "/"), rfp.ID)
	}
	return b.String()
}

// ==========================================
// Analytics
// ==========================================

// Dashboard returns the headline figures shown on the analytics page.
func (s *Service) Dashboard(ctx context.Context) *models.AnalyticsDashboard {
	return &models.AnalyticsDashboard{
		ActiveRFPs:        models.DashboardMetric{Value: 12, Trend: "+3 from last month"},
		PendingPlacements: models.DashboardMetric{Value: 87, Trend: "↓ 12 from last week"},
		AIResponseRate:    models.DashboardMetric{Value: "78%", Trend: "↑ 5% from last month"},
		WinRate:           models.DashboardMetric{Value: "32%", Trend: "↑ 7% from last quarter"},
	}
}
