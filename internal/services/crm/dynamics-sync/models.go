// internal/services/crm/dynamics-sync/models.go
package dynamicssync

import (
	"context"
	"fmt"
	"time"

	"rfp-dashboard/internal/common/dynamics"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/models"
)

// Mode selects the CRM entity an RFP is synced as.
type Mode string

const (
	ModeLead        Mode = "lead"
	ModeOpportunity Mode = "opportunity"
	ModeAuto        Mode = "auto"
)

// ParseMode accepts lead, opportunity, auto or empty (auto).
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeLead, ModeOpportunity:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown sync mode %q", s)
}

// Resolve turns auto into lead for new RFPs and opportunity otherwise.
func (m Mode) Resolve(status string) Mode {
	if m != ModeAuto && m != "" {
		return m
	}
	if status == models.RFPStatusNew {
		return ModeLead
	}
	return ModeOpportunity
}

const rfpNotFoundMessage = "RFP not found"

// BulkSyncItem is one per-RFP entry in a batch result.
type BulkSyncItem struct {
	RFPID string `json:"rfpId"`
	*dynamics.Response
}

type BulkSyncResult struct {
	Total      int            `json:"total"`
	Successful int            `json:"successful"`
	Failed     int            `json:"failed"`
	Results    []BulkSyncItem `json:"results"`
}

// SyncLink records that an RFP was pushed to the CRM as a given entity.
type SyncLink struct {
	RFPID    string    `json:"rfpId"`
	Entity   Mode      `json:"entity"`
	CRMID    string    `json:"crmId"`
	SyncedAt time.Time `json:"syncedAt"`
}

type SyncStatus struct {
	RFPID  string     `json:"rfpId"`
	Synced bool       `json:"synced"`
	Links  []SyncLink `json:"links"`
}

// SyncedEvent is published after each successful create.
type SyncedEvent struct {
	RFPID    string    `json:"rfpId"`
	Entity   Mode      `json:"entity"`
	CRMID    string    `json:"crmId"`
	Company  string    `json:"company"`
	Title    string    `json:"title"`
	SyncedAt time.Time `json:"syncedAt"`
}

const SyncedEventType = "rfp.synced"

// RFPGetter resolves an RFP by id, returning nil when it does not exist.
type RFPGetter interface {
	GetRFPByID(ctx context.Context, id string) (*models.RFP, error)
}

// CRM is the subset of the Dynamics client the orchestrator drives.
type CRM interface {
	IsEnabled() bool
	CreateLead(ctx context.Context, lead *dynamics.Lead) *dynamics.Response
	CreateOpportunity(ctx context.Context, opp *dynamics.Opportunity) *dynamics.Response
	TestConnection(ctx context.Context) *dynamics.Response
}

type Ledger interface {
	Record(ctx context.Context, link SyncLink) error
	Links(ctx context.Context, rfpID string) ([]SyncLink, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) (string, error)
}

// ServiceDependencies wires the orchestrator. Ledger and Publisher are optional.
type ServiceDependencies struct {
	RFPs      RFPGetter
	CRM       CRM
	Ledger    Ledger
	Publisher EventPublisher
	Logger    logger.Logger
}
