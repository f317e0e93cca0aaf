// internal/services/crm/dynamics-sync/validation.go
package dynamicssync

import "rfp-dashboard/internal/common/validation"

var createAsProperty = validation.Property{
	Type:        "string",
	Description: "Entity to create: lead, opportunity or auto",
	Enum:        []string{string(ModeLead), string(ModeOpportunity), string(ModeAuto)},
}

// GetRFPInputSchema covers the create-lead and create-opportunity calls.
func GetRFPInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"rfpId"},
		Properties: map[string]validation.Property{
			"rfpId": {
				Type:        "string",
				Description: "RFP identifier; unknown ids yield an \"RFP not found\" result",
			},
		},
		AdditionalProperties: false,
	}
}

func GetSyncInputSchema() validation.JSONSchema {
	schema := GetRFPInputSchema()
	schema.Properties["createAs"] = createAsProperty
	return schema
}

func GetBulkSyncInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"rfpIds"},
		Properties: map[string]validation.Property{
			"rfpIds": {
				Type:        "array",
				Description: "RFP identifiers, synced in order",
				Items:       &validation.Property{Type: "string"},
			},
			"createAs": createAsProperty,
		},
		AdditionalProperties: false,
	}
}
