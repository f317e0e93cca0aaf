// internal/services/ai/rfp-assistant/service.go
package rfpassistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"rfp-dashboard/internal/common/errors"
	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/models"
)

// Service wraps the LLM for document analysis and proposal work. Every
// operation reports failure through its result value.
type Service struct {
	llm    Completer
	repo   Repository
	logger logger.Logger
}

func NewService(deps ServiceDependencies) *Service {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		llm:    deps.LLM,
		repo:   deps.Repo,
		logger: log.WithFields(map[string]interface{}{"component": "rfp-assistant"}),
	}
}

func (s *Service) AnalyzeDocument(ctx context.Context, input AnalyzeDocumentInput) *AnalyzeDocumentResult {
	text, err := s.llm.Complete(ctx, "analyze_document", CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: analyzeSystemPrompt},
			{Role: "user", Content: analyzePrompt(input.Content)},
		},
	})
	if err != nil {
		s.fail("Error analyzing document", input.RFPID, err)
		return &AnalyzeDocumentResult{Success: false, Error: analyzeFailedMessage}
	}
	if text == "" {
		text = unableToAnalyze
	}
	return &AnalyzeDocumentResult{Success: true, Analysis: text}
}

// ExtractQuestions stores the extracted questions on the RFP as a JSON array.
func (s *Service) ExtractQuestions(ctx context.Context, input ExtractQuestionsInput) *ExtractQuestionsResult {
	failed := &ExtractQuestionsResult{Success: false, Error: extractFailedMessage, Questions: []models.ExtractedQuestion{}}

	var out struct {
		Questions []models.ExtractedQuestion `json:"questions"`
	}
	if err := s.completeJSON(ctx, "extract_questions", CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: extractSystemPrompt},
			{Role: "user", Content: extractPrompt(input.RFPContent)},
		},
		Output: questionsSchema(),
	}, &out); err != nil {
		s.fail("Error extracting questions", input.RFPID, err)
		return failed
	}
	if out.Questions == nil {
		out.Questions = []models.ExtractedQuestion{}
	}

	encoded, err := json.Marshal(out.Questions)
	if err != nil {
		s.fail("Error extracting questions", input.RFPID, err)
		return failed
	}
	stored := string(encoded)
	if err := s.repo.UpdateRFP(ctx, input.RFPID, models.UpdateRFPInput{ExtractedQuestions: &stored}); err != nil {
		s.fail("Error storing extracted questions", input.RFPID, err)
		return failed
	}

	s.logger.Info("Extracted RFP questions", map[string]interface{}{
		"rfpId": input.RFPID,
		"count": len(out.Questions),
	})
	return &ExtractQuestionsResult{Success: true, Questions: out.Questions}
}

// GenerateResponses answers questions using the whole knowledge base as context.
func (s *Service) GenerateResponses(ctx context.Context, input GenerateResponsesInput) *GenerateResponsesResult {
	failed := &GenerateResponsesResult{Success: false, Error: responsesFailedMessage, Responses: []QuestionResponse{}}

	entries, err := s.repo.ListKnowledgeBase(ctx)
	if err != nil {
		s.fail("Error loading knowledge base", input.RFPID, err)
		return failed
	}

	var out struct {
		Responses []QuestionResponse `json:"responses"`
	}
	if err := s.completeJSON(ctx, "generate_responses", CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: responsesSystemPrompt(knowledgeContext(entries))},
			{Role: "user", Content: responsesPrompt(input.Questions)},
		},
		Output: responsesSchema(),
	}, &out); err != nil {
		s.fail("Error generating responses", input.RFPID, err)
		return failed
	}
	if out.Responses == nil {
		out.Responses = []QuestionResponse{}
	}
	return &GenerateResponsesResult{Success: true, Responses: out.Responses}
}

// QualityCheck scores a proposal and writes the scores back to it.
func (s *Service) QualityCheck(ctx context.Context, input QualityCheckInput) *QualityCheckResult {
	failed := &QualityCheckResult{Success: false, Error: qualityFailedMessage}

	var scores models.QualityScores
	if err := s.completeJSON(ctx, "quality_check", CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: qualitySystemPrompt},
			{Role: "user", Content: qualityPrompt(input.Content, input.RFPRequirements)},
		},
		Output: qualitySchema(),
	}, &scores); err != nil {
		s.fail("Error performing quality check", input.ProposalID, err)
		return failed
	}

	update := models.UpdateProposalInput{
		QualityScore:          scoreString(scores.QualityScore),
		Completeness:          scoreString(scores.Completeness),
		Relevance:             scoreString(scores.Relevance),
		Clarity:               scoreString(scores.Clarity),
		CompetitiveDiff:       scoreString(scores.CompetitiveDiff),
		Alignment:             scoreString(scores.Alignment),
		ImprovementSuggestion: &scores.ImprovementSuggestion,
	}
	if err := s.repo.UpdateProposal(ctx, input.ProposalID, update); err != nil {
		s.fail("Error storing quality scores", input.ProposalID, err)
		return failed
	}

	return &QualityCheckResult{Success: true, QualityScores: &scores}
}

func (s *Service) completeJSON(ctx context.Context, operation string, req CompletionRequest, dst interface{}) error {
	text, err := s.llm.Complete(ctx, operation, req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return errors.NewLLMInvalidOutputError(fmt.Sprintf("decode %s output: %v", operation, err))
	}
	return nil
}

func (s *Service) fail(msg, id string, err error) {
	stdErr := errors.AsStandardError(err)
	s.logger.Error(msg, map[string]interface{}{
		"id":        id,
		"errorCode": stdErr.Code,
		"error":     err.Error(),
	})
}

// scoreString renders a score the way the dashboard stores it: integers
// without a decimal point.
func scoreString(v float64) *string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return &s
}
