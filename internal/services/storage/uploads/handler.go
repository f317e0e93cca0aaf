// internal/services/storage/uploads/handler.go
package uploads

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

type Uploader interface {
	UploadKnowledgeBase(ctx context.Context, input KnowledgeBaseUpload) (*UploadResult, error)
	UploadRFPDocument(ctx context.Context, input RFPDocumentUpload) (*UploadResult, error)
}

type Handler struct {
	service      Uploader
	logger       logger.Logger
	errors       *errors.ErrorHandler
	maxBodyBytes int64
}

type HandlerOptions struct {
	Service      Uploader
	Logger       logger.Logger
	MaxBodyBytes int64
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	if opts.Service == nil {
		return nil, fmt.Errorf("uploads handler requires a service")
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"component": "uploads"})

	return &Handler{
		service:      opts.Service,
		logger:       log,
		errors:       errors.NewErrorHandler(log),
		maxBodyBytes: opts.MaxBodyBytes,
	}, nil
}

func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/uploads/knowledge-base", h.UploadKnowledgeBase).Methods(http.MethodPost)
	api.HandleFunc("/uploads/rfp-document", h.UploadRFPDocument).Methods(http.MethodPost)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, schema validation.JSONSchema, dst interface{}) bool {
	if err := commonhttp.DecodeAndValidate(r, h.maxBodyBytes, schema, dst); err != nil {
		h.errors.Write(w, r, err)
		return false
	}
	return true
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, result *UploadResult, err error) {
	if err != nil {
		h.errors.Write(w, r, err)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) UploadKnowledgeBase(w http.ResponseWriter, r *http.Request) {
	var input KnowledgeBaseUpload
	if !h.decode(w, r, GetKnowledgeBaseUploadSchema(), &input) {
		return
	}
	result, err := h.service.UploadKnowledgeBase(r.Context(), input)
	h.respond(w, r, result, err)
}

func (h *Handler) UploadRFPDocument(w http.ResponseWriter, r *http.Request) {
	var input RFPDocumentUpload
	if !h.decode(w, r, GetRFPDocumentUploadSchema(), &input) {
		return
	}
	result, err := h.service.UploadRFPDocument(r.Context(), input)
	h.respond(w, r, result, err)
}
