// internal/store/proposals.go
package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/models"
)

const proposalColumns = `id, rfp_id, content, quality_score, completeness, relevance, clarity,
	competitive_diff, alignment, improvement_suggestion, status, created_at, updated_at`

func scanProposal(row rowScanner) (*models.Proposal, error) {
	var (
		p                                       models.Proposal
		content, quality, completeness, relev   sql.NullString
		clarity, competitive, alignment, improv sql.NullString
		createdAt, updatedAt                    sql.NullTime
	)
	if err := row.Scan(
		&p.ID, &p.RFPID, &content, &quality, &completeness, &relev, &clarity,
		&competitive, &alignment, &improv, &p.Status, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	p.Content = nullString(content)
	p.QualityScore = nullString(quality)
	p.Completeness = nullString(completeness)
	p.Relevance = nullString(relev)
	p.Clarity = nullString(clarity)
	p.CompetitiveDiff = nullString(competitive)
	p.Alignment = nullString(alignment)
	p.ImprovementSuggestion = nullString(improv)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

// GetProposalByRFPID returns the first proposal for the RFP, or nil, nil.
func (s *Store) GetProposalByRFPID(ctx context.Context, rfpID string) (*models.Proposal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+proposalColumns+` FROM proposals WHERE rfp_id = $1 ORDER BY created_at LIMIT 1`, rfpID)
	p, err := scanProposal(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("get_proposal_by_rfp", err)
	}
	return p, nil
}

func (s *Store) CreateProposal(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO proposals (id, rfp_id, content, quality_score, completeness, relevance,
			clarity, competitive_diff, alignment, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		p.ID, p.RFPID, toNullString(p.Content), p.QualityScore, p.Completeness, p.Relevance,
		p.Clarity, p.CompetitiveDiff, p.Alignment, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError("proposals", err)
	}
	return p, nil
}

// UpdateProposal applies the non-nil fields of input.
func (s *Store) UpdateProposal(ctx context.Context, id string, input models.UpdateProposalInput) error {
	var b updateBuilder
	b.setString("content", input.Content)
	b.setString("quality_score", input.QualityScore)
	b.setString("completeness", input.Completeness)
	b.setString("relevance", input.Relevance)
	b.setString("clarity", input.Clarity)
	b.setString("competitive_diff", input.CompetitiveDiff)
	b.setString("alignment", input.Alignment)
	b.setString("improvement_suggestion", input.ImprovementSuggestion)
	b.setString("status", input.Status)

	if b.empty() {
		return nil
	}

	query, args := b.build("proposals", id, true)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.NewQueryExecutionFailedError("update_proposal", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewProposalNotFoundError(id)
	}
	return nil
}
