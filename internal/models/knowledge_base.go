// internal/models/knowledge_base.go
package models

import "time"

const (
	KnowledgeCategoryAudienceData = "audience_data"
	KnowledgeCategoryAdFormats    = "ad_formats"
	KnowledgeCategoryPricing      = "pricing"
	KnowledgeCategoryCaseStudies  = "case_studies"
)

var KnowledgeCategories = []string{
	KnowledgeCategoryAudienceData,
	KnowledgeCategoryAdFormats,
	KnowledgeCategoryPricing,
	KnowledgeCategoryCaseStudies,
}

type KnowledgeBaseEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content,omitempty"`
	FileURL   string    `json:"fileUrl,omitempty"`
	FileType  string    `json:"fileType,omitempty"`
	FileSize  int64     `json:"fileSize,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateKnowledgeBaseInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content,omitempty"`
	FileURL  string `json:"fileUrl,omitempty"`
	FileType string `json:"fileType,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
}
