// internal/services/ai/rfp-assistant/validation.go
package rfpassistant

import "rfp-dashboard/internal/common/validation"

func GetAnalyzeDocumentSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"rfpId", "content"},
		Properties: map[string]validation.Property{
			"rfpId":   {Type: "string", MinLength: intPtr(1)},
			"content": {Type: "string", Description: "Raw RFP text"},
		},
		AdditionalProperties: false,
	}
}

func GetExtractQuestionsSchema() validation.JSONSchema {
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

func GetGenerateResponsesSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"rfpId", "questions"},
		Properties: map[string]validation.Property{
			"rfpId": {Type: "string", MinLength: intPtr(1)},
			"questions": {
				Type: "array",
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"id", "question", "category"},
					Properties: map[string]validation.Property{
						"id":       {Type: "string"},
						"question": {Type: "string"},
						"category": {Type: "string"},
					},
				},
			},
		},
		AdditionalProperties: false,
	}
}

func GetQualityCheckSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"proposalId", "content"},
		Properties: map[string]validation.Property{
			"proposalId":      {Type: "string", MinLength: intPtr(1)},
			"content":         {Type: "string"},
			"rfpRequirements": {Type: "string"},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
