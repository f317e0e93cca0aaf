package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func testSchema() JSONSchema {
	return JSONSchema{
		Type:     "object",
		Required: []string{"rfpId"},
		Properties: map[string]Property{
			"rfpId":    {Type: "string", MinLength: intPtr(1)},
			"createAs": {Type: "string", Enum: []string{"lead", "opportunity", "auto"}},
			"limit":    {Type: "integer"},
			"rfpIds":   {Type: "array", Items: &Property{Type: "string"}},
			"question": {
				Type:       "object",
				Required:   []string{"id"},
				Properties: map[string]Property{"id": {Type: "string"}},
			},
		},
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantValid  bool
		wantFields []string
	}{
		{"valid", `{"rfpId":"r1","createAs":"lead","limit":10,"rfpIds":["a","b"]}`, true, nil},
		{"missing required", `{"createAs":"auto"}`, false, []string{"rfpId"}},
		{"empty string", `{"rfpId":""}`, false, []string{"rfpId"}},
		{"bad enum", `{"rfpId":"r1","createAs":"account"}`, false, []string{"createAs"}},
		{"fractional integer", `{"rfpId":"r1","limit":1.5}`, false, []string{"limit"}},
		{"array item type", `{"rfpId":"r1","rfpIds":["a",2]}`, false, []string{"rfpIds[1]"}},
		{"nested required", `{"rfpId":"r1","question":{}}`, false, []string{"question.id"}},
		{"extra field", `{"rfpId":"r1","foo":true}`, false, []string{"foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(decode(t, tt.body), testSchema())
			assert.Equal(t, tt.wantValid, result.Valid, result.GetErrorMessages())

			var fields []string
			for _, e := range result.Errors {
				fields = append(fields, e.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestGetErrorMessages(t *testing.T) {
	result := ValidateInput(map[string]interface{}{}, testSchema())
	assert.Equal(t, []string{"rfpId: required field missing"}, result.GetErrorMessages())
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("jane.doe@example.com"))
	assert.False(t, ValidateEmail("jane.doe"))
	assert.False(t, ValidateEmail("jane@localhost"))
}

func TestValidateInput_Formats(t *testing.T) {
	schema := JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"email":   {Type: "string", Format: "email"},
			"fileUrl": {Type: "string", Format: "uri"},
		},
	}

	tests := []struct {
		name      string
		body      string
		wantCodes []string
	}{
		{"valid", `{"email":"jane@example.com","fileUrl":"https://cdn.example.com/a.pdf"}`, nil},
		{"empty strings skip format", `{"email":"","fileUrl":""}`, nil},
		{"bad email", `{"email":"jane"}`, []string{CodeFormat}},
		{"relative url", `{"fileUrl":"/files/a.pdf"}`, []string{CodeFormat}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(decode(t, tt.body), schema)
			var codes []string
			for _, e := range result.Errors {
				codes = append(codes, e.Code)
			}
			assert.Equal(t, tt.wantCodes, codes)
		})
	}
}

func TestValidateInput_ErrorsOrderedByField(t *testing.T) {
	schema := JSONSchema{
		Type:     "object",
		Required: []string{"title", "company", "dueDate"},
		Properties: map[string]Property{
			"title":   {Type: "string"},
			"company": {Type: "string"},
			"dueDate": {Type: "string"},
		},
	}

	result := ValidateInput(map[string]interface{}{}, schema)
	assert.Equal(t, []string{
		"company: required field missing",
		"dueDate: required field missing",
		"title: required field missing",
	}, result.GetErrorMessages())
}

func TestValidateInput_LengthCountsRunes(t *testing.T) {
	schema := JSONSchema{
		Type:       "object",
		Properties: map[string]Property{"owner": {Type: "string", MaxLength: intPtr(4)}},
	}

	assert.True(t, ValidateInput(map[string]interface{}{"owner": "Zoë!"}, schema).Valid)
	assert.False(t, ValidateInput(map[string]interface{}{"owner": "Zoë!!"}, schema).Valid)
}
