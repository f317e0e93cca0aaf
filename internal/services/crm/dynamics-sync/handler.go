// internal/services/crm/dynamics-sync/handler.go
package dynamicssync

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"rfp-dashboard/internal/common/dynamics"
	"rfp-dashboard/internal/common/errors"
	commonhttp "rfp-dashboard/internal/common/http"
	"rfp-dashboard/internal/common/logger"
)

// Syncer is the orchestrator surface the HTTP layer calls.
type Syncer interface {
	IsEnabled() bool
	TestConnection(ctx context.Context) *dynamics.Response
	CreateLeadFromRFP(ctx context.Context, rfpID string) *dynamics.Response
	CreateOpportunityFromRFP(ctx context.Context, rfpID string) *dynamics.Response
	SyncRFP(ctx context.Context, rfpID string, mode Mode) *dynamics.Response
	BulkSync(ctx context.Context, rfpIDs []string, mode Mode) *BulkSyncResult
	SyncStatus(ctx context.Context, rfpID string) (*SyncStatus, error)
}

type Handler struct {
	config       *Config
	service      Syncer
	logger       logger.Logger
	errors       *errors.ErrorHandler
	maxBodyBytes int64
}

type HandlerOptions struct {
	Config       *Config
	Service      Syncer
	Logger       logger.Logger
	MaxBodyBytes int64
}

type rfpInput struct {
	RFPID string `json:"rfpId"`
}

type syncInput struct {
	RFPID    string `json:"rfpId"`
	CreateAs string `json:"createAs,omitempty"`
}

type bulkSyncInput struct {
	RFPIDs   []string `json:"rfpIds"`
	CreateAs string   `json:"createAs,omitempty"`
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for dynamics-sync: %w", err)
	}
	if opts.Service == nil {
		return nil, fmt.Errorf("dynamics-sync handler requires a service")
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"component": "dynamics-sync"})

	return &Handler{
		config:       cfg,
		service:      opts.Service,
		logger:       log,
		errors:       errors.NewErrorHandler(log),
		maxBodyBytes: opts.MaxBodyBytes,
	}, nil
}

// RegisterRoutes mounts the Dynamics 365 endpoints under /api/dynamics365.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	r := api.PathPrefix("/dynamics365").Subrouter()
	r.HandleFunc("/enabled", h.IsEnabled).Methods(http.MethodGet)
	r.HandleFunc("/test-connection", h.TestConnection).Methods(http.MethodPost)
	r.HandleFunc("/leads", h.CreateLead).Methods(http.MethodPost)
	r.HandleFunc("/opportunities", h.CreateOpportunity).Methods(http.MethodPost)
	r.HandleFunc("/sync", h.Sync).Methods(http.MethodPost)
	r.HandleFunc("/bulk-sync", h.BulkSync).Methods(http.MethodPost)
	r.HandleFunc("/sync-status/{rfpId}", h.SyncStatus).Methods(http.MethodGet)
}

func (h *Handler) IsEnabled(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, map[string]bool{"enabled": h.service.IsEnabled()})
}

func (h *Handler) TestConnection(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, h.service.TestConnection(r.Context()))
}

func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var input rfpInput
	if err := commonhttp.DecodeAndValidate(r, h.maxBodyBytes, GetRFPInputSchema(), &input); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.CreateLeadFromRFP(r.Context(), input.RFPID))
}

func (h *Handler) CreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var input rfpInput
	if err := commonhttp.DecodeAndValidate(r, h.maxBodyBytes, GetRFPInputSchema(), &input); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.CreateOpportunityFromRFP(r.Context(), input.RFPID))
}

func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	var input syncInput
	if err := commonhttp.DecodeAndValidate(r, h.maxBodyBytes, GetSyncInputSchema(), &input); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	mode, err := ParseMode(input.CreateAs)
	if err != nil {
		h.errors.Write(w, r, errors.NewValidationFailedError(err.Error()))
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.SyncRFP(r.Context(), input.RFPID, mode))
}

func (h *Handler) BulkSync(w http.ResponseWriter, r *http.Request) {
	var input bulkSyncInput
	if err := commonhttp.DecodeAndValidate(r, h.maxBodyBytes, GetBulkSyncInputSchema(), &input); err != nil {
		h.errors.Write(w, r, err)
		return
	}
	mode, err := ParseMode(input.CreateAs)
	if err != nil {
		h.errors.Write(w, r, errors.NewValidationFailedError(err.Error()))
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.BulkSync(r.Context(), input.RFPIDs, mode))
}

func (h *Handler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	rfpID := mux.Vars(r)["rfpId"]
	status, err := h.service.SyncStatus(r.Context(), rfpID)
	if err != nil {
		h.errors.Write(w, r, errors.NewInternalError(err))
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, status)
}
