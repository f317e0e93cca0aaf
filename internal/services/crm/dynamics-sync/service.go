// internal/services/crm/dynamics-sync/service.go
package dynamicssync

import (
	"context"
	"time"

	"rfp-dashboard/internal/common/dynamics"
	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/metrics"
	"rfp-dashboard/internal/models"
)

// Service coordinates the mapper and the CRM client. It never returns Go
// errors; every outcome is a *dynamics.Response.
type Service struct {
	config    *Config
	rfps      RFPGetter
	crm       CRM
	ledger    Ledger
	publisher EventPublisher
	logger    logger.Logger
	now       func() time.Time
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
		config:    config,
		rfps:      deps.RFPs,
		crm:       deps.CRM,
		ledger:    deps.Ledger,
		publisher: deps.Publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (s *Service) IsEnabled() bool {
	return s.crm.IsEnabled()
}

func (s *Service) TestConnection(ctx context.Context) *dynamics.Response {
	return s.crm.TestConnection(ctx)
}

func (s *Service) CreateLeadFromRFP(ctx context.Context, rfpID string) *dynamics.Response {
	return s.SyncOne(ctx, rfpID, ModeLead)
}

func (s *Service) CreateOpportunityFromRFP(ctx context.Context, rfpID string) *dynamics.Response {
	return s.SyncOne(ctx, rfpID, ModeOpportunity)
}

// SyncRFP is SyncOne under the name the RPC surface uses.
func (s *Service) SyncRFP(ctx context.Context, rfpID string, mode Mode) *dynamics.Response {
	return s.SyncOne(ctx, rfpID, mode)
}

// SyncOne loads the RFP, resolves the mode against its status and creates
// the matching CRM entity.
func (s *Service) SyncOne(ctx context.Context, rfpID string, mode Mode) *dynamics.Response {
	rfp, resp := s.load(ctx, rfpID)
	if resp != nil {
		s.record(mode, resp)
		return resp
	}

	entity := mode.Resolve(rfp.Status)
	resp = s.create(ctx, rfp, entity)
	s.record(entity, resp)

	if resp.Success {
		s.logger.Info("RFP synced to Dynamics 365", map[string]interface{}{
			"rfpId":  rfp.ID,
			"entity": string(entity),
			"crmId":  resp.ID,
		})
		s.afterSync(ctx, rfp, entity, resp.ID)
	}
	return resp
}

// BulkSync is SyncMany under the name the RPC surface uses.
func (s *Service) BulkSync(ctx context.Context, rfpIDs []string, mode Mode) *BulkSyncResult {
	return s.SyncMany(ctx, rfpIDs, mode)
}

// SyncMany syncs each id in turn. A failing id never stops the batch, and
// results keep input order.
func (s *Service) SyncMany(ctx context.Context, rfpIDs []string, mode Mode) *BulkSyncResult {
	result := &BulkSyncResult{
		Total:   len(rfpIDs),
		Results: make([]BulkSyncItem, 0, len(rfpIDs)),
	}

	for _, rfpID := range rfpIDs {
		resp := s.SyncOne(ctx, rfpID, mode)
		if resp.Success {
			result.Successful++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, BulkSyncItem{RFPID: rfpID, Response: resp})
	}

	s.logger.Info("Bulk sync finished", map[string]interface{}{
		"total":      result.Total,
		"successful": result.Successful,
		"failed":     result.Failed,
		"mode":       string(mode),
	})
	return result
}

// SyncStatus reports the links recorded for an RFP. Without a ledger it
// always reports unsynced.
func (s *Service) SyncStatus(ctx context.Context, rfpID string) (*SyncStatus, error) {
	status := &SyncStatus{RFPID: rfpID, Links: []SyncLink{}}
	if s.ledger == nil {
		return status, nil
	}

	links, err := s.ledger.Links(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	status.Links = links
	status.Synced = len(links) > 0
	return status, nil
}

func (s *Service) load(ctx context.Context, rfpID string) (*models.RFP, *dynamics.Response) {
	rfp, err := s.rfps.GetRFPByID(ctx, rfpID)
	if err != nil {
		s.logger.Error("Failed to load RFP for sync", map[string]interface{}{
			"rfpId": rfpID,
			"error": err.Error(),
		})
		return nil, dynamics.Failure(errors.AsStandardError(err).Message)
	}
	if rfp == nil {
		return nil, dynamics.Failure(rfpNotFoundMessage)
	}
	return rfp, nil
}

func (s *Service) create(ctx context.Context, rfp *models.RFP, entity Mode) *dynamics.Response {
	if entity == ModeLead {
		return s.crm.CreateLead(ctx, MapRFPToLead(rfp))
	}
	return s.crm.CreateOpportunity(ctx, MapRFPToOpportunity(rfp))
}

func (s *Service) record(mode Mode, resp *dynamics.Response) {
	metrics.RFPSyncResults.WithLabelValues(string(mode), metrics.Outcome(resp.Success)).Inc()
}

// afterSync writes the ledger entry and publishes the event. Failures are
// logged only and never change the sync result.
func (s *Service) afterSync(ctx context.Context, rfp *models.RFP, entity Mode, crmID string) {
	if s.ledger == nil && s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.SideEffectTimeout)
	defer cancel()

	syncedAt := s.now().UTC()

	if s.ledger != nil {
		link := SyncLink{RFPID: rfp.ID, Entity: entity, CRMID: crmID, SyncedAt: syncedAt}
		if err := s.ledger.Record(ctx, link); err != nil {
			s.logger.Warn("Failed to record sync link", map[string]interface{}{
				"rfpId": rfp.ID,
				"error": err.Error(),
			})
		}
	}

	if s.publisher != nil {
		event := SyncedEvent{
			RFPID:    rfp.ID,
			Entity:   entity,
			CRMID:    crmID,
			Company:  rfp.Company,
			Title:    rfp.Title,
			SyncedAt: syncedAt,
		}
		if _, err := s.publisher.Publish(ctx, SyncedEventType, event); err != nil {
			s.logger.Warn("Failed to publish sync event", map[string]interface{}{
				"rfpId": rfp.ID,
				"error": err.Error(),
			})
		}
	}
}
