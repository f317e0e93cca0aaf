// internal/services/ai/rfp-assistant/handler.go
package rfpassistant

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"rfp-dashboard/internal/common/errors"
	commonhttp "rfp-dashboard/internal/common/http"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/common/validation"
)

type Assistant interface {
	AnalyzeDocument(ctx context.Context, input AnalyzeDocumentInput) *AnalyzeDocumentResult
	ExtractQuestions(ctx context.Context, input ExtractQuestionsInput) *ExtractQuestionsResult
	GenerateResponses(ctx context.Context, input GenerateResponsesInput) *GenerateResponsesResult
	QualityCheck(ctx context.Context, input QualityCheckInput) *QualityCheckResult
}

type Handler struct {
	service      Assistant
	logger       logger.Logger
	errors       *errors.ErrorHandler
	maxBodyBytes int64
}

type HandlerOptions struct {
	Service      Assistant
	Logger       logger.Logger
	MaxBodyBytes int64
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("rfp-assistant handler requires a service")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"component": "rfp-assistant"})

	return &Handler{
		service:      opts.Service,
		logger:       log,
		errors:       errors.NewErrorHandler(log),
		maxBodyBytes: opts.MaxBodyBytes,
	}, nil
}

// RegisterRoutes mounts the assistant under /ai. Operation failures are
// answered with 200 and success=false.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	ai := api.PathPrefix("/ai").Subrouter()
	ai.HandleFunc("/analyze-document", h.AnalyzeDocument).Methods(http.MethodPost)
	ai.HandleFunc("/extract-questions", h.ExtractQuestions).Methods(http.MethodPost)
	ai.HandleFunc("/generate-responses", h.GenerateResponses).Methods(http.MethodPost)
	ai.HandleFunc("/quality-check", h.QualityCheck).Methods(http.MethodPost)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema validation.JSONSchema, dst interface{}) bool {
	if err := commonhttp.DecodeAndValidate(r, h.maxBodyBytes, schema, dst); err != nil {
		h.errors.Write(w, r, err)
		return false
	}
	return true
}

func (h *Handler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var input AnalyzeDocumentInput
	if !h.decode(w, r, GetAnalyzeDocumentSchema(), &input) {
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.AnalyzeDocument(r.Context(), input))
}

func (h *Handler) ExtractQuestions(w http.ResponseWriter, r *http.Request) {
	var input ExtractQuestionsInput
	if !h.decode(w, r, GetExtractQuestionsSchema(), &input) {
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.ExtractQuestions(r.Context(), input))
}

func (h *Handler) GenerateResponses(w http.ResponseWriter, r *http.Request) {
	var input GenerateResponsesInput
	if !h.decode(w, r, GetGenerateResponsesSchema(), &input) {
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.GenerateResponses(r.Context(), input))
}

func (h *Handler) QualityCheck(w http.ResponseWriter, r *http.Request) {
	var input QualityCheckInput
	if !h.decode(w, r, GetQualityCheckSchema(), &input) {
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, h.service.QualityCheck(r.Context(), input))
}
