// internal/services/storage/uploads/models.go
package uploads

import (
	"context"

	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/models"
)

const (
	knowledgeBaseFailedMessage = "Failed to upload file"
	rfpDocumentFailedMessage   = "Failed to upload document"
)

// ObjectStore puts a blob under key and returns its public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type Repository interface {
	CreateKnowledgeBase(ctx context.Context, e *models.KnowledgeBaseEntry) (*models.KnowledgeBaseEntry, error)
	UpdateRFP(ctx context.Context, id string, input models.UpdateRFPInput) error
}

// ServiceDependencies wires the service. Storage is nil when object storage
// is not configured.
type ServiceDependencies struct {
	Storage ObjectStore
	Repo    Repository
	Logger  logger.Logger
}

type KnowledgeBaseUpload struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	FileData string `json:"fileData"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type RFPDocumentUpload struct {
	RFPID    string `json:"rfpId"`
	FileData string `json:"fileData"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

type UploadResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}
