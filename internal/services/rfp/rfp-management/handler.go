// internal/services/rfp/rfp-management/handler.go
package rfpmanagement

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"rfp-dashboard/internal/common/errors"
	commonhttp "rfp-dashboard/internal/common/http"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/validation"
	"rfp-dashboard/internal/models"
)

// Manager is the service surface the HTTP layer calls.
type Manager interface {
	ListRFPs(ctx context.Context) ([]models.RFP, error)
	GetRFP(ctx context.Context, id string) (*models.RFP, error)
	CreateRFP(ctx context.Context, input models.CreateRFPInput) (*models.RFP, error)
	UpdateRFP(ctx context.Context, id string, input models.UpdateRFPInput) (*SuccessResult, error)
	GetProposalByRFPID(ctx context.Context, rfpID string) (*models.Proposal, error)
	CreateProposal(ctx context.Context, input models.CreateProposalInput) (*models.Proposal, error)
	UpdateProposal(ctx context.Context, id string, input models.UpdateProposalInput) (*SuccessResult, error)
	GenerateResponse(ctx context.Context, input GenerateResponseInput) *GeneratedResponse
	ListKnowledgeBase(ctx context.Context) ([]models.KnowledgeBaseEntry, error)
	SearchKnowledgeBase(ctx context.Context, query string) ([]models.KnowledgeBaseEntry, error)
	CreateKnowledgeBase(ctx context.Context, input models.CreateKnowledgeBaseInput) (*models.KnowledgeBaseEntry, error)
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	CreateTeamMember(ctx context.Context, input models.CreateTeamMemberInput) (*models.TeamMember, error)
	ListAssignments(ctx context.Context, rfpID string) ([]models.RFPAssignment, error)
	CreateAssignment(ctx context.Context, input models.CreateAssignmentInput) (*models.RFPAssignment, error)
	Dashboard(ctx context.Context) *models.AnalyticsDashboard
}

type Handler struct {
	service      Manager
	logger       logger.Logger
	errors       *errors.ErrorHandler
	maxBodyBytes int64
}

type HandlerOptions struct {
	Service      Manager
	Logger       logger.Logger
	MaxBodyBytes int64
}

// dueDateLayouts are tried in order when parsing incoming due dates.
var dueDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

type createRFPBody struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	DueDate string `json:"dueDate"`
	Value   string `json:"value"`
	Owner   string `json:"owner"`
}

type updateRFPBody struct {
	Title    *string `json:"title"`
	Company  *string `json:"company"`
	DueDate  *string `json:"dueDate"`
	Value    *string `json:"value"`
	Status   *string `json:"status"`
	Progress *string `json:"progress"`
	Owner    *string `json:"owner"`
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("rfp-management handler requires a service")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"component": "rfp-management"})

	return &Handler{
		service:      opts.Service,
		logger:       log,
		errors:       errors.NewErrorHandler(log),
		maxBodyBytes: opts.MaxBodyBytes,
	}, nil
}

func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/rfps", h.ListRFPs).Methods(http.MethodGet)
	api.HandleFunc("/rfps", h.CreateRFP).Methods(http.MethodPost)
	api.HandleFunc("/rfps/{id}", h.GetRFP).Methods(http.MethodGet)
	api.HandleFunc("/rfps/{id}", h.UpdateRFP).Methods(http.MethodPatch)
	api.HandleFunc("/rfps/{rfpId}/proposal", h.GetProposal).Methods(http.MethodGet)
	api.HandleFunc("/rfps/{rfpId}/assignments", h.ListAssignments).Methods(http.MethodGet)

	api.HandleFunc("/proposals", h.CreateProposal).Methods(http.MethodPost)
	api.HandleFunc("/proposals/generate-response", h.GenerateResponse).Methods(http.MethodPost)
	api.HandleFunc("/proposals/{id}", h.UpdateProposal).Methods(http.MethodPatch)

	api.HandleFunc("/knowledge-base", h.ListKnowledgeBase).Methods(http.MethodGet)
	api.HandleFunc("/knowledge-base", h.CreateKnowledgeBase).Methods(http.MethodPost)
	api.HandleFunc("/knowledge-base/search", h.SearchKnowledgeBase).Methods(http.MethodGet)

	api.HandleFunc("/team-members", h.ListTeamMembers).Methods(http.MethodGet)
	api.HandleFunc("/team-members", h.CreateTeamMember).Methods(http.MethodPost)
	api.HandleFunc("/assignments", h.CreateAssignment).Methods(http.MethodPost)

	api.HandleFunc("/analytics/dashboard", h.Dashboard).Methods(http.MethodGet)
}

// respond writes v, or the error when err is set.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, status int, v interface{}, err error) {
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, status, v)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema validation.JSONSchema, dst interface{}) bool {
	if err := commonhttp.DecodeAndValidate(r, h.maxBodyBytes, schema, dst); err != nil {
		h.errors.Write(w, r, err)
		return false
	}
	return true
}

// ==========================================
// RFPs
// ==========================================

func (h *Handler) ListRFPs(w http.ResponseWriter, r *http.Request) {
	rfps, err := h.service.ListRFPs(r.Context())
	h.respond(w, r, http.StatusOK, rfps, err)
}

func (h *Handler) GetRFP(w http.ResponseWriter, r *http.Request) {
	rfp, err := h.service.GetRFP(r.Context(), mux.Vars(r)["id"])
	h.respond(w, r, http.StatusOK, rfp, err)
}

func (h *Handler) CreateRFP(w http.ResponseWriter, r *http.Request) {
	var body createRFPBody
	if !h.decode(w, r, GetCreateRFPSchema(), &body) {
		return
	}
	due, err := parseDueDate(body.DueDate)
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}

	rfp, err := h.service.CreateRFP(r.Context(), models.CreateRFPInput{
		Title:   body.Title,
		Company: body.Company,
		DueDate: due,
		Value:   body.Value,
		Owner:   body.Owner,
	})
	h.respond(w, r, http.StatusCreated, rfp, err)
}

func (h *Handler) UpdateRFP(w http.ResponseWriter, r *http.Request) {
	var body updateRFPBody
	if !h.decode(w, r, GetUpdateRFPSchema(), &body) {
		return
	}

	input := models.UpdateRFPInput{
		Title:    body.Title,
		Company:  body.Company,
		Value:    body.Value,
		Status:   body.Status,
		Progress: body.Progress,
		Owner:    body.Owner,
	}
	if body.DueDate != nil && *body.DueDate != "" {
		due, err := parseDueDate(*body.DueDate)
		if err != nil {
			h.errors.Write(w, r, err)
			return
		}
		input.DueDate = &due
	}

	result, err := h.service.UpdateRFP(r.Context(), mux.Vars(r)["id"], input)
	h.respond(w, r, http.StatusOK, result, err)
}

func parseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewValidationFailedError(fmt.Sprintf("dueDate: %q is not a valid date", s))
}

// ==========================================
// Proposals
// ==========================================

// GetProposal answers null when the RFP has no proposal yet.
func (h *Handler) GetProposal(w http.ResponseWriter, r *http.Request) {
	proposal, err := h.service.GetProposalByRFPID(r.Context(), mux.Vars(r)["rfpId"])
	h.respond(w, r, http.StatusOK, proposal, err)
}

func (h *Handler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	var input models.CreateProposalInput
	if !h.decode(w, r, GetCreateProposalSchema(), &input) {
		return
	}
	proposal, err := h.service.CreateProposal(r.Context(), input)
	h.respond(w, r, http.StatusCreated, proposal, err)
}

func (h *Handler) UpdateProposal(w http.ResponseWriter, r *http.Request) {
	var input models.UpdateProposalInput
	if !h.decode(w, r, GetUpdateProposalSchema(), &input) {
		return
	}
	result, err := h.service.UpdateProposal(r.Context(), mux.Vars(r)["id"], input)
	h.respond(w, r, http.StatusOK, result, err)
}

func (h *Handler) GenerateResponse(w http.ResponseWriter, r *http.Request) {
	var input GenerateResponseInput
	if !h.decode(w, r, GetGenerateResponseSchema(), &input) {
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.GenerateResponse(r.Context(), input))
}

// ==========================================
// Knowledge base
// ==========================================

func (h *Handler) ListKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListKnowledgeBase(r.Context())
	h.respond(w, r, http.StatusOK, entries, err)
}

func (h *Handler) SearchKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.SearchKnowledgeBase(r.Context(), r.URL.Query().Get("q"))
	h.respond(w, r, http.StatusOK, entries, err)
}

func (h *Handler) CreateKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	var input models.CreateKnowledgeBaseInput
	if !h.decode(w, r, GetCreateKnowledgeBaseSchema(), &input) {
		return
	}
	entry, err := h.service.CreateKnowledgeBase(r.Context(), input)
	h.respond(w, r, http.StatusCreated, entry, err)
}

// ==========================================
// Team and assignments
// ==========================================

func (h *Handler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListTeamMembers(r.Context())
	h.respond(w, r, http.StatusOK, members, err)
}

func (h *Handler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var input models.CreateTeamMemberInput
	if !h.decode(w, r, GetCreateTeamMemberSchema(), &input) {
		return
	}
	member, err := h.service.CreateTeamMember(r.Context(), input)
	h.respond(w, r, http.StatusCreated, member, err)
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.service.ListAssignments(r.Context(), mux.Vars(r)["rfpId"])
	h.respond(w, r, http.StatusOK, assignments, err)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var input models.CreateAssignmentInput
	if !h.decode(w, r, GetCreateAssignmentSchema(), &input) {
		return
	}
	assignment, err := h.service.CreateAssignment(r.Context(), input)
	h.respond(w, r, http.StatusCreated, assignment, err)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteJSON(w, http.StatusOK, h.service.Dashboard(r.Context()))
}
