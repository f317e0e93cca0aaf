// internal/common/database/schema.go
package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rfps (
		id                  VARCHAR(64) PRIMARY KEY,
		title               TEXT NOT NULL,
		company             VARCHAR(255) NOT NULL,
		due_date            TIMESTAMPTZ NOT NULL,
		value               VARCHAR(50),
		status              VARCHAR(20) NOT NULL DEFAULT 'new'
		                    CHECK (status IN ('new','in_progress','under_review','completed')),
		progress            VARCHAR(10) DEFAULT '0',
		owner               VARCHAR(255),
		rfp_document_url    TEXT,
		rfp_document_name   VARCHAR(255),
		extracted_questions TEXT,
		created_at          TIMESTAMPTZ DEFAULT NOW(),
		updated_at          TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS proposals (
		id                     VARCHAR(64) PRIMARY KEY,
		rfp_id                 VARCHAR(64) NOT NULL REFERENCES rfps(id),
		content                TEXT,
		quality_score          VARCHAR(10),
		completeness           VARCHAR(10),
		relevance              VARCHAR(10),
		clarity                VARCHAR(10),
		competitive_diff       VARCHAR(10),
		alignment              VARCHAR(10),
		improvement_suggestion TEXT,
		status                 VARCHAR(20) NOT NULL DEFAULT 'draft'
		                       CHECK (status IN ('draft','pending_review','approved','sent')),
		created_at             TIMESTAMPTZ DEFAULT NOW(),
		updated_at             TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS knowledge_base (
		id         VARCHAR(64) PRIMARY KEY,
		title      VARCHAR(255) NOT NULL,
		category   VARCHAR(20) NOT NULL
		           CHECK (category IN ('audience_data','ad_formats','pricing','case_studies')),
		content    TEXT,
		file_url   TEXT,
		file_type  VARCHAR(100),
		file_size  INTEGER,
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		id         VARCHAR(64) PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		role       VARCHAR(100) NOT NULL,
		email      VARCHAR(320),
		status     VARCHAR(10) NOT NULL DEFAULT 'offline'
		           CHECK (status IN ('online','offline','away')),
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS rfp_assignments (
		id          VARCHAR(64) PRIMARY KEY,
		rfp_id      VARCHAR(64) NOT NULL REFERENCES rfps(id),
		member_id   VARCHAR(64) NOT NULL REFERENCES team_members(id),
		assigned_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS analytics (
		id     VARCHAR(64) PRIMARY KEY,
		metric VARCHAR(100) NOT NULL,
		value  VARCHAR(50) NOT NULL,
		date   TIMESTAMPTZ DEFAULT NOW()
	)`,
}

var seedStatements = []string{
	`INSERT INTO rfps (id, title, company, due_date, value, status, progress, owner) VALUES
		('rfp-001', 'Q3 Digital Media Campaign RFP', 'MediaBuyers Agency', '2025-04-15T00:00:00Z', '$1.2M', 'in_progress', '72', 'John Davis'),
		('rfp-002', 'Summer Multichannel Campaign RFP', 'BrandMax Advertising', '2025-04-22T00:00:00Z', '$800K', 'under_review', '95', 'Sarah Johnson'),
		('rfp-003', 'Product Launch Campaign RFP', 'TechCorp', '2025-05-05T00:00:00Z', '$1.5M', 'new', '15', 'Michael Chen')`,
	`INSERT INTO team_members (id, name, role, email, status) VALUES
		('member-001', 'John Doe', 'Media Director', 'john.doe@example.com', 'online'),
		('member-002', 'Amanda Smith', 'Digital Strategist', 'amanda.smith@example.com', 'online'),
		('member-003', 'Robert Johnson', 'Ad Operations', 'robert.johnson@example.com', 'away')`,
}

// InitSchema creates every table if missing. With seed set, sample RFPs and
// team members are inserted when the rfps table is empty.
func InitSchema(ctx context.Context, db *sql.DB, seed bool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	if !seed {
		return nil
	}

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rfps`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count rfps: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, stmt := range seedStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}
	return nil
}
