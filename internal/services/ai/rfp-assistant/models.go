// internal/services/ai/rfp-assistant/models.go
package rfpassistant

import (
	"context"

	"rfp-dashboard/internal/common/logger"
	"rfp-dashboard/internal/models"
)

// Failure messages returned in result values.
const (
	analyzeFailedMessage   = "Failed to analyze document"
	extractFailedMessage   = "Failed to extract questions"
	responsesFailedMessage = "Failed to generate responses"
	qualityFailedMessage   = "Failed to perform quality check"

	unableToAnalyze = "Unable to analyze document"
)

// Completer produces a chat completion for a named operation.
type Completer interface {
	Complete(ctx context.Context, operation string, req CompletionRequest) (string, error)
}

// Repository is the persistence surface the assistant writes results to.
type Repository interface {
	UpdateRFP(ctx context.Context, id string, input models.UpdateRFPInput) error
	UpdateProposal(ctx context.Context, id string, input models.UpdateProposalInput) error
	ListKnowledgeBase(ctx context.Context) ([]models.KnowledgeBaseEntry, error)
}

type ServiceDependencies struct {
	LLM    Completer
	Repo   Repository
	Logger logger.Logger
}

type AnalyzeDocumentInput struct {
	RFPID   string `json:"rfpId"`
	Content string `json:"content"`
}

type AnalyzeDocumentResult struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis,omitempty"`
	Error    string `json:"error,omitempty"`
}

type ExtractQuestionsInput struct {
	RFPID      string `json:"rfpId"`
	RFPContent string `json:"rfpContent"`
}

// ExtractQuestionsResult always carries a questions array, empty on failure.
type ExtractQuestionsResult struct {
	Success   bool                       `json:"success"`
	Questions []models.ExtractedQuestion `json:"questions"`
	Error     string                     `json:"error,omitempty"`
}

type QuestionInput struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`
}

type GenerateResponsesInput struct {
	RFPID     string          `json:"rfpId"`
	Questions []QuestionInput `json:"questions"`
}

type QuestionResponse struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type GenerateResponsesResult struct {
	Success   bool               `json:"success"`
	Responses []QuestionResponse `json:"responses"`
	Error     string             `json:"error,omitempty"`
}

type QualityCheckInput struct {
	ProposalID      string `json:"proposalId"`
	Content         string `json:"content"`
	RFPRequirements string `json:"rfpRequirements,omitempty"`
}

// QualityCheckResult flattens the scores next to success on the wire.
type QualityCheckResult struct {
	Success bool `json:"success"`
	*models.QualityScores
	Error string `json:"error,omitempty"`
}
