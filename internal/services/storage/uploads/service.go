// internal/services/storage/uploads/service.go
package uploads

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/models"
)

type Service struct {
	config  *Config
	storage ObjectStore
	repo    Repository
	logger  logger.Logger
	newID   func() string
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
		config:  config,
		storage: deps.Storage,
		repo:    deps.Repo,
		logger:  log.WithFields(map[string]interface{}{"component": "uploads"}),
		newID:   uuid.NewString,
	}
}

// UploadKnowledgeBase stores the file and creates a knowledge base entry
// pointing at it. Returned errors are input or configuration problems;
// upload and database failures come back as an unsuccessful result.
func (s *Service) UploadKnowledgeBase(ctx context.Context, input KnowledgeBaseUpload) (*UploadResult, error) {
	if s.storage == nil {
		return nil, errors.NewStorageNotConfiguredError()
	}
	data, err := s.decode(input.FileData)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("knowledge-base/%s-%s", s.newID(), safeName(input.FileName))
	url, err := s.put(ctx, key, data, input.FileType)
	if err != nil {
		return &UploadResult{Success: false, Error: knowledgeBaseFailedMessage}, nil
	}

	entry := &models.KnowledgeBaseEntry{
		ID:       s.newID(),
		Title:    input.Title,
		Category: input.Category,
		FileURL:  url,
		FileType: input.FileType,
		FileSize: int64(len(data)),
	}
	if _, err := s.repo.CreateKnowledgeBase(ctx, entry); err != nil {
		s.logger.Error("Error creating knowledge base entry for upload", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return &UploadResult{Success: false, Error: knowledgeBaseFailedMessage}, nil
	}

	return &UploadResult{Success: true, ID: entry.ID, URL: url}, nil
}

// UploadRFPDocument stores the file and links it from the RFP.
func (s *Service) UploadRFPDocument(ctx context.Context, input RFPDocumentUpload) (*UploadResult, error) {
	if s.storage == nil {
		return nil, errors.NewStorageNotConfiguredError()
	}
	data, err := s.decode(input.FileData)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("rfp-documents/%s/%s-%s", input.RFPID, s.newID(), safeName(input.FileName))
	url, err := s.put(ctx, key, data, input.FileType)
	if err != nil {
		return &UploadResult{Success: false, Error: rfpDocumentFailedMessage}, nil
	}

	name := input.FileName
	if err := s.repo.UpdateRFP(ctx, input.RFPID, models.UpdateRFPInput{
		RFPDocumentURL:  &url,
		RFPDocumentName: &name,
	}); err != nil {
		s.logger.Error("Error linking uploaded document to RFP", map[string]interface{}{
			"rfpId": input.RFPID,
			"error": err.Error(),
		})
		return &UploadResult{Success: false, Error: rfpDocumentFailedMessage}, nil
	}

	return &UploadResult{Success: true, URL: url}, nil
}

func (s *Service) put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.UploadTimeout)
	defer cancel()

	url, err := s.storage.Put(ctx, key, data, contentType)
	if err != nil {
		stdErr := errors.NewStorageUploadFailedError(key, err)
		s.logger.Error("Error uploading file", map[string]interface{}{
			"errorCode": stdErr.Code,
			"details":   stdErr.Details,
		})
		return "", stdErr
	}

	s.logger.Info("Uploaded file", map[string]interface{}{
		"key":  key,
		"size": len(data),
	})
	return url, nil
}

// decode accepts padded or unpadded standard base64.
func (s *Service) decode(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if int64(base64.StdEncoding.DecodedLen(len(encoded))) > s.config.MaxFileBytes+2 {
		return nil, errors.NewValidationFailedError(fmt.Sprintf("fileData: file exceeds %d bytes", s.config.MaxFileBytes))
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(encoded)
	}
	if err != nil {
		return nil, errors.NewValidationFailedError("fileData: invalid base64")
	}
	if int64(len(data)) > s.config.MaxFileBytes {
		return nil, errors.NewValidationFailedError(fmt.Sprintf("fileData: file exceeds %d bytes", s.config.MaxFileBytes))
	}
	return data, nil
}

// safeName keeps only the final path element of a client supplied name.
func safeName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "file"
	}
	return base
}
