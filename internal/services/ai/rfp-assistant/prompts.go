// internal/services/ai/rfp-assistant/prompts.go
package rfpassistant

import (
	"fmt"
	"strings"

	"rfp-dashboard/internal/models"
)

const analyzeSystemPrompt = "You are an expert RFP analyzer. Extract key information from RFP documents including requirements, deadlines, evaluation criteria, and budget constraints."

const extractSystemPrompt = "You are an expert at extracting questions from RFP documents. Identify all questions that need to be answered in the proposal response."

const qualitySystemPrompt = "You are an expert proposal quality assessor. Evaluate proposals on completeness, relevance, clarity, competitive differentiation, and alignment with RFP requirements. Provide scores (0-100) and specific improvement suggestions."

func analyzePrompt(content string) string {
	return fmt.Sprintf(`Analyze this RFP content and provide a structured summary of:
1. Key requirements
2. Evaluation criteria
3. Target audience
4. Success metrics

RFP CONTENT:
%s

Provide the analysis in a clear, structured format.`, content)
}

func extractPrompt(content string) string {
	return fmt.Sprintf(`Extract all questions from this RFP content that need to be answered:

%s

Return a JSON array of questions with the following structure:
{
  "questions": [
    {
      "id": "q1",
      "question": "question text",
      "category": "technical|pricing|experience|other",
      "priority": "high|medium|low"
    }
  ]
}`, content)
}

// knowledgeContext renders entries as "title: content" blocks.
func knowledgeContext(entries []models.KnowledgeBaseEntry) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, fmt.Sprintf("%s: %s", e.Title, e.Content))
	}
	return strings.Join(blocks, "\n\n")
}

func responsesSystemPrompt(kbContext string) string {
	return fmt.Sprintf(`You are an expert proposal writer for a media advertising company. Use the following knowledge base to answer RFP questions accurately and professionally:

%s

Provide detailed, specific answers that demonstrate expertise and align with the company's capabilities.`, kbContext)
}

func responsesPrompt(questions []QuestionInput) string {
	lines := make([]string, 0, len(questions))
	for i, q := range questions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, q.Question))
	}
	return fmt.Sprintf(`Generate professional responses to these RFP questions:

%s

Return a JSON object with responses:
{
  "responses": [
    {
      "questionId": "question id",
      "answer": "detailed answer"
    }
  ]
}`, strings.Join(lines, "\n"))
}

func qualityPrompt(content, requirements string) string {
	reqs := ""
	if requirements != "" {
		reqs = "RFP REQUIREMENTS:\n" + requirements
	}
	return fmt.Sprintf(`Evaluate this proposal and provide quality scores:

PROPOSAL CONTENT:
%s

%s

Return a JSON object with the following structure:
{
  "qualityScore": 85,
  "completeness": 90,
  "relevance": 85,
  "clarity": 88,
  "competitiveDiff": 80,
  "alignment": 87,
  "improvementSuggestion": "specific suggestion for improvement"
}`, content, reqs)
}

// ==========================================
// Structured output schemas
// ==========================================

func strictObject(properties map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func questionsSchema() *OutputSchema {
	question := strictObject(map[string]interface{}{
		"id":       map[string]interface{}{"type": "string"},
		"question": map[string]interface{}{"type": "string"},
		"category": map[string]interface{}{"type": "string", "enum": []string{"technical", "pricing", "experience", "other"}},
		"priority": map[string]interface{}{"type": "string", "enum": []string{"high", "medium", "low"}},
	}, "id", "question", "category", "priority")

	return &OutputSchema{
		Name: "questions_extraction",
		Schema: strictObject(map[string]interface{}{
			"questions": map[string]interface{}{"type": "array", "items": question},
		}, "questions"),
	}
}

func responsesSchema() *OutputSchema {
	response := strictObject(map[string]interface{}{
		"questionId": map[string]interface{}{"type": "string"},
		"answer":     map[string]interface{}{"type": "string"},
	}, "questionId", "answer")

	return &OutputSchema{
		Name: "question_responses",
		Schema: strictObject(map[string]interface{}{
			"responses": map[string]interface{}{"type": "array", "items": response},
		}, "responses"),
	}
}

func qualitySchema() *OutputSchema {
	number := map[string]interface{}{"type": "number"}
	return &OutputSchema{
		Name: "quality_assessment",
		Schema: strictObject(map[string]interface{}{
			"qualityScore":          number,
			"completeness":          number,
			"relevance":             number,
			"clarity":               number,
			"competitiveDiff":       number,
			"alignment":             number,
			"improvementSuggestion": map[string]interface{}{"type": "string"},
		}, "qualityScore", "completeness", "relevance", "clarity", "competitiveDiff", "alignment", "improvementSuggestion"),
	}
}
