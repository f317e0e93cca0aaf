// internal/store/rfps.go
package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/models"
)

const rfpColumns = `id, title, company, due_date, value, status, progress, owner,
	rfp_document_url, rfp_document_name, extracted_questions, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRFP(row rowScanner) (*models.RFP, error) {
	var (
		rfp                                     models.RFP
		dueDate, createdAt, updatedAt           sql.NullTime
		value, progress, owner, docURL, docName sql.NullString
		questions                               sql.NullString
	)
	if err := row.Scan(
		&rfp.ID, &rfp.Title, &rfp.Company, &dueDate, &value, &rfp.Status, &progress, &owner,
		&docURL, &docName, &questions, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	rfp.DueDate = nullTimePtr(dueDate)
	rfp.Value = nullString(value)
	rfp.Progress = nullString(progress)
	rfp.Owner = nullString(owner)
	rfp.RFPDocumentURL = nullString(docURL)
	rfp.RFPDocumentName = nullString(docName)
	rfp.ExtractedQuestions = nullStringPtr(questions)
	rfp.CreatedAt = createdAt.Time
	rfp.UpdatedAt = updatedAt.Time
	return &rfp, nil
}

// ListRFPs returns every RFP, newest first.
func (s *Store) ListRFPs(ctx context.Context) ([]models.RFP, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+rfpColumns+` FROM rfps ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_rfps", err)
	}
	defer rows.Close()

	rfps := make([]models.RFP, 0)
	for rows.Next() {
		rfp, err := scanRFP(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_rfps", err)
		}
		rfps = append(rfps, *rfp)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_rfps", err)
	}
	return rfps, nil
}

// GetRFPByID returns nil, nil when no RFP has the id.
func (s *Store) GetRFPByID(ctx context.Context, id string) (*models.RFP, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+rfpColumns+` FROM rfps WHERE id = $1`, id)
	rfp, err := scanRFP(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("get_rfp", err)
	}
	return rfp, nil
}

// CreateRFP inserts rfp and fills in the database timestamps.
func (s *Store) CreateRFP(ctx context.Context, rfp *models.RFP) (*models.RFP, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO rfps (id, title, company, due_date, value, status, progress, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		rfp.ID, rfp.Title, rfp.Company, toNullTime(rfp.DueDate), toNullString(rfp.Value),
		rfp.Status, rfp.Progress, toNullString(rfp.Owner),
	).Scan(&rfp.CreatedAt, &rfp.UpdatedAt)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError("rfps", err)
	}
	return rfp, nil
}

// UpdateRFP applies the non-nil fields of input. It returns an RFP_NOT_FOUND
// error when the id does not exist.
func (s *Store) UpdateRFP(ctx context.Context, id string, input models.UpdateRFPInput) error {
	var b updateBuilder
	b.setString("title", input.Title)
	b.setString("company", input.Company)
	b.setTime("due_date", input.DueDate)
	b.setString("value", input.Value)
	b.setString("status", input.Status)
	b.setString("progress", input.Progress)
	b.setString("owner", input.Owner)
	b.setString("rfp_document_url", input.RFPDocumentURL)
	b.setString("rfp_document_name", input.RFPDocumentName)
	b.setString("extracted_questions", input.ExtractedQuestions)

	if b.empty() {
		return nil
	}

	query, args := b.build("rfps", id, true)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.NewQueryExecutionFailedError("update_rfp", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewRFPNotFoundError(id)
	}
	return nil
}
