// internal/services/storage/uploads/validation.go
package uploads

import (
	"rfp-dashboard/internal/common/validation"
	"rfp-dashboard/internal/models"
)

func GetKnowledgeBaseUploadSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"title", "category", "fileData", "fileName", "fileType"},
		Properties: map[string]validation.Property{
			"title":    {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(500)},
			"category": {Type: "string", Enum: models.KnowledgeCategories},
			"fileData": {Type: "string", Description: "Base64 encoded file"},
			"fileName": {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(255)},
			"fileType": {Type: "string", MaxLength: intPtr(100)},
		},
		AdditionalProperties: false,
	}
}

func GetRFPDocumentUploadSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"rfpId", "fileData", "fileName", "fileType"},
		Properties: map[string]validation.Property{
			"rfpId":    {Type: "string", MinLength: intPtr(1)},
			"fileData": {Type: "string", Description: "Base64 encoded file"},
			"fileName": {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(255)},
			"fileType": {Type: "string", MaxLength: intPtr(100)},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
