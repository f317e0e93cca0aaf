// internal/services/rfp/rfp-management/validation.go
package rfpmanagement

import (
	"rfp-dashboard/internal/common/validation"
	"rfp-dashboard/internal/models"
)

func GetCreateRFPSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"title", "company", "dueDate"},
		Properties: map[string]validation.Property{
			"title":   {Type: "string", Description: "RFP title", MinLength: intPtr(1), MaxLength: intPtr(500)},
			"company": {Type: "string", Description: "Issuing company", MinLength: intPtr(1), MaxLength: intPtr(255)},
			"dueDate": {Type: "string", Description: "Due date, ISO-8601"},
			"value":   {Type: "string", Description: "Free-text value, e.g. $1.2M", MaxLength: intPtr(100)},
			"owner":   {Type: "string", Description: "Owner full name", MaxLength: intPtr(255)},
		},
		AdditionalProperties: false,
	}
}

func GetUpdateRFPSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"title":    {Type: "string", MaxLength: intPtr(500)},
			"company":  {Type: "string", MaxLength: intPtr(255)},
			"dueDate":  {Type: "string"},
			"value":    {Type: "string", MaxLength: intPtr(100)},
			"status":   {Type: "string", Enum: models.RFPStatuses},
			"progress": {Type: "string", MaxLength: intPtr(10)},
			"owner":    {Type: "string", MaxLength: intPtr(255)},
		},
		AdditionalProperties: false,
	}
}

func GetCreateProposalSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"rfpId"},
		Properties: map[string]validation.Property{
			"rfpId":   {Type: "string", MinLength: intPtr(1)},
			"content": {Type: "string"},
		},
		AdditionalProperties: false,
	}
}

func GetUpdateProposalSchema() validation.JSONSchema {
	score := validation.Property{Type: "string", MaxLength: intPtr(10)}
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"content":               {Type: "string"},
			"qualityScore":          score,
			"completeness":          score,
			"relevance":             score,
			"clarity":               score,
			"competitiveDiff":       score,
			"alignment":             score,
			"improvementSuggestion": {Type: "string"},
			"status":                {Type: "string", Enum: models.ProposalStatuses},
		},
		AdditionalProperties: false,
	}
}

func GetGenerateResponseSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"rfpId", "rfpContent"},
		Properties: map[string]validation.Property{
			"rfpId":      {Type: "string", MinLength: intPtr(1)},
			"rfpContent": {Type: "string"},
		},
		AdditionalProperties: false,
	}
}

func GetCreateKnowledgeBaseSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"title", "category"},
		Properties: map[string]validation.Property{
			"title":    {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(500)},
			"category": {Type: "string", Enum: models.KnowledgeCategories},
			"content":  {Type: "string"},
			"fileUrl":  {Type: "string", Format: "uri"},
		},
		AdditionalProperties: false,
	}
}

func GetCreateTeamMemberSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"name", "role"},
		Properties: map[string]validation.Property{
			"name":  {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(255)},
			"role":  {Type: "string", MinLength: intPtr(1), MaxLength: intPtr(100)},
			"email": {Type: "string", Format: "email", MaxLength: intPtr(320)},
		},
		AdditionalProperties: false,
	}
}

func GetCreateAssignmentSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"rfpId", "memberId"},
		Properties: map[string]validation.Property{
			"rfpId":    {Type: "string", MinLength: intPtr(1)},
			"memberId": {Type: "string", MinLength: intPtr(1)},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
