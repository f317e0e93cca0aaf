// internal/store/knowledge_base.go
package store

import (
	"context"
	"database/sql"
	"strings"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/models"
)

const knowledgeBaseColumns = `id, title, category, content, file_url, file_type, file_size, updated_at`

// ListKnowledgeBase returns all entries, most recently updated first.
func (s *Store) ListKnowledgeBase(ctx context.Context) ([]models.KnowledgeBaseEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+knowledgeBaseColumns+`
		FROM knowledge_base
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_knowledge_base", err)
	}
	return scanKnowledgeBaseRows(rows, "list_knowledge_base")
}

// SearchKnowledgeBase matches query against title and content, case-insensitively.
func (s *Store) SearchKnowledgeBase(ctx context.Context, query string, limit int) ([]models.KnowledgeBaseEntry, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+knowledgeBaseColumns+`
		FROM knowledge_base
		WHERE title ILIKE $1 OR content ILIKE $1
		ORDER BY updated_at DESC
		LIMIT $2`, pattern, limit)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("search_knowledge_base", err)
	}
	return scanKnowledgeBaseRows(rows, "search_knowledge_base")
}

func scanKnowledgeBaseRows(rows *sql.Rows, queryName string) ([]models.KnowledgeBaseEntry, error) {
	defer rows.Close()

	entries := make([]models.KnowledgeBaseEntry, 0)
	for rows.Next() {
		var (
			e                          models.KnowledgeBaseEntry
			content, fileURL, fileType sql.NullString
			fileSize                   sql.NullInt64
			updatedAt                  sql.NullTime
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Category, &content, &fileURL, &fileType, &fileSize, &updatedAt); err != nil {
			return nil, errors.NewQueryExecutionFailedError(queryName, err)
		}
		e.Content = nullString(content)
		e.FileURL = nullString(fileURL)
		e.FileType = nullString(fileType)
		e.FileSize = fileSize.Int64
		e.UpdatedAt = updatedAt.Time
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError(queryName, err)
	}
	return entries, nil
}

func (s *Store) CreateKnowledgeBase(ctx context.Context, e *models.KnowledgeBaseEntry) (*models.KnowledgeBaseEntry, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO knowledge_base (id, title, category, content, file_url, file_type, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING updated_at`,
		e.ID, e.Title, e.Category, toNullString(e.Content), toNullString(e.FileURL),
		toNullString(e.FileType), sql.NullInt64{Int64: e.FileSize, Valid: e.FileSize > 0},
	).Scan(&e.UpdatedAt)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError("knowledge_base", err)
	}
	return e, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
