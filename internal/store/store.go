// internal/store/store.go
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Store is the PostgreSQL repository for RFPs and everything hanging off them.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// updateBuilder accumulates "column = $n" assignments for partial updates.
type updateBuilder struct {
	sets []string
	args []interface{}
}

func (b *updateBuilder) setString(column string, value *string) {
	if value == nil {
		return
	}
	b.add(column, *value)
}

func (b *updateBuilder) setTime(column string, value *time.Time) {
	if value == nil {
		return
	}
	b.add(column, *value)
}

func (b *updateBuilder) add(column string, value interface{}) {
	b.args = append(b.args, value)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

func (b *updateBuilder) empty() bool {
	return len(b.sets) == 0
}

// build returns the UPDATE statement with the id as the final placeholder.
func (b *updateBuilder) build(table, id string, touchUpdatedAt bool) (string, []interface{}) {
	sets := b.sets
	if touchUpdatedAt {
		sets = append(sets, "updated_at = NOW()")
	}
	args := append(b.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args))
	return query, args
}

func nullString(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}

func nullStringPtr(s sql.NullString) *string {
	if s.Valid {
		v := s.String
		return &v
	}
	return nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if t.Valid {
		v := t.Time
		return &v
	}
	return nil
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
