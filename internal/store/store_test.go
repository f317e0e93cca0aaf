package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/models"
)

var (
	rfpRowColumns = []string{
		"id", "title", "company", "due_date", "value", "status", "progress", "owner",
		"rfp_document_url", "rfp_document_name", "extracted_questions", "created_at", "updated_at",
	}
	fixedTime = time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func strPtr(s string) *string { return &s }

// ==========================================
// RFPs
// ==========================================

func TestGetRFPByID_Found(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows(rfpRowColumns).AddRow(
		"rfp-001", "Q3 Digital Media Campaign RFP", "MediaBuyers Agency", fixedTime, "$1.2M",
		"in_progress", "72", "John Davis", nil, nil, "1. Audience reach?", fixedTime, fixedTime,
	)
	mock.ExpectQuery("SELECT (.+) FROM rfps WHERE id = \\$1").WithArgs("rfp-001").WillReturnRows(rows)

	rfp, err := s.GetRFPByID(context.Background(), "rfp-001")
	require.NoError(t, err)
	require.NotNil(t, rfp)

	assert.Equal(t, "Q3 Digital Media Campaign RFP", rfp.Title)
	assert.Equal(t, "$1.2M", rfp.Value)
	assert.Equal(t, fixedTime, *rfp.DueDate)
	assert.True(t, rfp.HasExtractedQuestions())
	assert.Empty(t, rfp.RFPDocumentURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRFPByID_NotFoundReturnsNil(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM rfps WHERE id = \\$1").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	rfp, err := s.GetRFPByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, rfp)
}

func TestGetRFPByID_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM rfps").WillReturnError(fmt.Errorf("connection reset"))

	_, err := s.GetRFPByID(context.Background(), "rfp-001")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeQueryExecutionFailed))
}

func TestListRFPs(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows(rfpRowColumns).
		AddRow("rfp-002", "Summer", "BrandMax", fixedTime, "$800K", "under_review", "95", "Sarah Johnson", nil, nil, nil, fixedTime, fixedTime).
		AddRow("rfp-001", "Q3", "MediaBuyers", fixedTime, nil, "new", "0", nil, nil, nil, nil, fixedTime, fixedTime)
	mock.ExpectQuery("SELECT (.+) FROM rfps ORDER BY created_at DESC").WillReturnRows(rows)

	rfps, err := s.ListRFPs(context.Background())
	require.NoError(t, err)
	require.Len(t, rfps, 2)
	assert.Equal(t, "rfp-002", rfps[0].ID)
	assert.Empty(t, rfps[1].Value)
	assert.Nil(t, rfps[1].ExtractedQuestions)
}

func TestCreateRFP(t *testing.T) {
	s, mock := newMockStore(t)

	due := fixedTime
	rfp := &models.RFP{ID: "id-1", Title: "T", Company: "C", DueDate: &due, Status: "new", Progress: "0"}

	mock.ExpectQuery("INSERT INTO rfps").
		WithArgs("id-1", "T", "C", due, nil, "new", "0", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(fixedTime, fixedTime))

	created, err := s.CreateRFP(context.Background(), rfp)
	require.NoError(t, err)
	assert.Equal(t, fixedTime, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRFP_PartialFields(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE rfps SET status = \\$1, progress = \\$2, updated_at = NOW\\(\\) WHERE id = \\$3").
		WithArgs("completed", "100", "rfp-001").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateRFP(context.Background(), "rfp-001", models.UpdateRFPInput{
		Status:   strPtr("completed"),
		Progress: strPtr("100"),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRFP_NoFieldsIsNoop(t *testing.T) {
	s, mock := newMockStore(t)
	require.NoError(t, s.UpdateRFP(context.Background(), "rfp-001", models.UpdateRFPInput{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRFP_Missing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("UPDATE rfps").WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateRFP(context.Background(), "missing", models.UpdateRFPInput{Title: strPtr("x")})
	assert.True(t, errors.HasCode(err, errors.ErrCodeRFPNotFound))
}

// ==========================================
// Proposals
// ==========================================

func TestGetProposalByRFPID(t *testing.T) {
	s, mock := newMockStore(t)

	cols := []string{"id", "rfp_id", "content", "quality_score", "completeness", "relevance", "clarity",
		"competitive_diff", "alignment", "improvement_suggestion", "status", "created_at", "updated_at"}
	mock.ExpectQuery("FROM proposals WHERE rfp_id = \\$1").WithArgs("rfp-001").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p-1", "rfp-001", "Dear Client", "87", "92", "95", "88", "75", "90", nil, "draft", fixedTime, fixedTime))

	p, err := s.GetProposalByRFPID(context.Background(), "rfp-001")
	require.NoError(t, err)
	assert.Equal(t, "87", p.QualityScore)
	assert.Equal(t, "draft", p.Status)
}

func TestGetProposalByRFPID_None(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("FROM proposals").WillReturnError(sql.ErrNoRows)

	p, err := s.GetProposalByRFPID(context.Background(), "rfp-001")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestUpdateProposal_Scores(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("UPDATE proposals SET quality_score = \\$1, improvement_suggestion = \\$2, updated_at = NOW\\(\\) WHERE id = \\$3").
		WithArgs("80", "Add case studies", "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.UpdateProposal(context.Background(), "p-1", models.UpdateProposalInput{
		QualityScore:          strPtr("80"),
		ImprovementSuggestion: strPtr("Add case studies"),
	})
	require.NoError(t, err)
}

func TestUpdateProposal_Missing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("UPDATE proposals").WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateProposal(context.Background(), "nope", models.UpdateProposalInput{Status: strPtr("sent")})
	assert.True(t, errors.HasCode(err, errors.ErrCodeProposalNotFound))
}

// ==========================================
// Knowledge base, team, assignments
// ==========================================

func TestListKnowledgeBase(t *testing.T) {
	s, mock := newMockStore(t)
	cols := []string{"id", "title", "category", "content", "file_url", "file_type", "file_size", "updated_at"}
	mock.ExpectQuery("FROM knowledge_base").WillReturnRows(sqlmock.NewRows(cols).
		AddRow("kb-1", "Audience 2025", "audience_data", "2.5M users", nil, nil, nil, fixedTime).
		AddRow("kb-2", "Rate card", "pricing", nil, "https://cdn/x.pdf", "application/pdf", 2048, fixedTime))

	entries, err := s.ListKnowledgeBase(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2.5M users", entries[0].Content)
	assert.Equal(t, int64(2048), entries[1].FileSize)
}

func TestCreateKnowledgeBase_InsertFails(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("INSERT INTO knowledge_base").WillReturnError(fmt.Errorf("check constraint"))

	_, err := s.CreateKnowledgeBase(context.Background(), &models.KnowledgeBaseEntry{ID: "kb", Title: "t", Category: "bogus"})
	assert.True(t, errors.HasCode(err, errors.ErrCodeDatabaseInsertFailed))
}

func TestCreateTeamMemberAndAssignment(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("INSERT INTO team_members").
		WithArgs("m-1", "Jane", "Planner", nil, "offline").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(fixedTime))
	mock.ExpectQuery("INSERT INTO rfp_assignments").
		WithArgs("a-1", "rfp-001", "m-1").
		WillReturnRows(sqlmock.NewRows([]string{"assigned_at"}).AddRow(fixedTime))

	m, err := s.CreateTeamMember(context.Background(), &models.TeamMember{ID: "m-1", Name: "Jane", Role: "Planner", Status: "offline"})
	require.NoError(t, err)
	assert.Equal(t, fixedTime, m.CreatedAt)

	a, err := s.CreateAssignment(context.Background(), &models.RFPAssignment{ID: "a-1", RFPID: "rfp-001", MemberID: "m-1"})
	require.NoError(t, err)
	assert.Equal(t, fixedTime, a.AssignedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAssignmentsByRFPID(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("FROM rfp_assignments").WithArgs("rfp-001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "rfp_id", "member_id", "assigned_at"}).
			AddRow("a-1", "rfp-001", "member-001", fixedTime))

	assignments, err := s.ListAssignmentsByRFPID(context.Background(), "rfp-001")
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "member-001", assignments[0].MemberID)
}

func TestGetTeamMemberByID_Missing(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("FROM team_members WHERE id").WillReturnError(sql.ErrNoRows)

	m, err := s.GetTeamMemberByID(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestSearchKnowledgeBase_EscapesPattern(t *testing.T) {
	s, mock := newMockStore(t)
	cols := []string{"id", "title", "category", "content", "file_url", "file_type", "file_size", "updated_at"}
	mock.ExpectQuery("FROM knowledge_base WHERE title ILIKE \\$1 OR content ILIKE \\$1").
		WithArgs(`%100\%\_reach%`, 10).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("kb-1", "Reach", "audience_data", "100% reach", nil, nil, nil, fixedTime))

	entries, err := s.SearchKnowledgeBase(context.Background(), "100%_reach", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kb-1", entries[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
