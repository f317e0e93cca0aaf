// internal/store/team.go
package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/models"
)

func (s *Store) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, email, status, created_at FROM team_members ORDER BY created_at`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_team_members", err)
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0)
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_team_members", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_team_members", err)
	}
	return members, nil
}

// GetTeamMemberByID returns nil, nil when the member does not exist.
func (s *Store) GetTeamMemberByID(ctx context.Context, id string) (*models.TeamMember, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, role, email, status, created_at FROM team_members WHERE id = $1`, id)
	m, err := scanTeamMember(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("get_team_member", err)
	}
	return m, nil
}

func scanTeamMember(row rowScanner) (*models.TeamMember, error) {
	var (
		m         models.TeamMember
		email     sql.NullString
		createdAt sql.NullTime
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &email, &m.Status, &createdAt); err != nil {
		return nil, err
	}
	m.Email = nullString(email)
	m.CreatedAt = createdAt.Time
	return &m, nil
}

func (s *Store) CreateTeamMember(ctx context.Context, m *models.TeamMember) (*models.TeamMember, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO team_members (id, name, role, email, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		m.ID, m.Name, m.Role, toNullString(m.Email), m.Status,
	).Scan(&m.CreatedAt)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError("team_members", err)
	}
	return m, nil
}

func (s *Store) ListAssignmentsByRFPID(ctx context.Context, rfpID string) ([]models.RFPAssignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, rfp_id, member_id, assigned_at
		FROM rfp_assignments
		WHERE rfp_id = $1
		ORDER BY assigned_at`, rfpID)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_assignments", err)
	}
	defer rows.Close()

	assignments := make([]models.RFPAssignment, 0)
	for rows.Next() {
		var (
			a          models.RFPAssignment
			assignedAt sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.RFPID, &a.MemberID, &assignedAt); err != nil {
			return nil, errors.NewQueryExecutionFailedError("list_assignments", err)
		}
		a.AssignedAt = assignedAt.Time
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("list_assignments", err)
	}
	return assignments, nil
}

func (s *Store) CreateAssignment(ctx context.Context, a *models.RFPAssignment) (*models.RFPAssignment, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO rfp_assignments (id, rfp_id, member_id)
		VALUES ($1, $2, $3)
		RETURNING assigned_at`,
		a.ID, a.RFPID, a.MemberID,
	).Scan(&a.AssignedAt)
	if err != nil {
		return nil, errors.NewDatabaseInsertFailedError("rfp_assignments", err)
	}
	return a, nil
}
