// internal/services/crm/dynamics-sync/mapper.go
package dynamicssync

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"rfp-dashboard/internal/common/dynamics"
	"rfp-dashboard/internal/models"
)

const (
	untitledRFP = "Untitled RFP"
	// closeDateLayout matches ISO-8601 UTC with millisecond precision.
	closeDateLayout = "2006-01-02T15:04:05.000Z"
)

var (
	currencyChars = strings.NewReplacer("$", "", ",", "")
	numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// MapRFPToLead builds the lead payload for an RFP. Unparseable values and
// dates leave their fields unset.
func MapRFPToLead(rfp *models.RFP) *dynamics.Lead {
	first, last := splitOwner(rfp.Owner)

	subject := rfp.Title
	if subject == "" {
		subject = untitledRFP
	}

	description := "RFP for " + rfp.Company
	if rfp.HasExtractedQuestions() {
		description = "RFP Details:\n\n" + *rfp.ExtractedQuestions
	}

	return &dynamics.Lead{
		Subject:            subject,
		CompanyName:        rfp.Company,
		FirstName:          first,
		LastName:           last,
		Description:        description,
		EstimatedValue:     parseValue(rfp.Value),
		EstimatedCloseDate: closeDate(rfp),
		LeadSourceCode:     dynamics.LeadSourceWeb,
		LeadQualityCode:    dynamics.LeadQualityWarm,
	}
}

// MapRFPToOpportunity builds the opportunity payload for an RFP.
func MapRFPToOpportunity(rfp *models.RFP) *dynamics.Opportunity {
	value := parseValue(rfp.Value)

	return &dynamics.Opportunity{
		Name:               rfp.Title + " - " + rfp.Company,
		Description:        opportunityDescription(rfp),
		EstimatedValue:     value,
		EstimatedCloseDate: closeDate(rfp),
		BudgetAmount:       value,
		StepName:           stageFor(rfp.Status),
	}
}

func opportunityDescription(rfp *models.RFP) string {
	var b strings.Builder
	b.WriteString("RFP: " + rfp.Title + "\n")
	b.WriteString("Company: " + rfp.Company + "\n")
	if rfp.Owner != "" {
		b.WriteString("Owner: " + rfp.Owner + "\n")
	}
	if rfp.Value != "" {
		b.WriteString("Value: " + rfp.Value + "\n")
	}
	if rfp.Status != "" {
		b.WriteString("Status: " + rfp.Status + "\n")
	}
	if rfp.Progress != "" {
		b.WriteString("Progress: " + rfp.Progress + "%\n")
	}
	if rfp.HasExtractedQuestions() {
		b.WriteString("\nExtracted Requirements:\n" + *rfp.ExtractedQuestions)
	}
	return b.String()
}

func stageFor(status string) string {
	if status == models.RFPStatusCompleted {
		return dynamics.StageClose
	}
	return dynamics.StagePropose
}

// splitOwner returns the first token as the first name and the rest, joined
// by single spaces, as the last name.
func splitOwner(owner string) (first, last string) {
	parts := strings.Fields(owner)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// parseValue strips "$" and "," and reads the longest leading decimal number,
// so "$1.2M" yields 1.2. Returns nil when no number leads the string.
func parseValue(value string) *float64 {
	if value == "" {
		return nil
	}
	s := strings.TrimLeftFunc(currencyChars.Replace(value), unicode.IsSpace)

	match := numericPrefix.FindString(s)
	if match == "" {
		return nil
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func closeDate(rfp *models.RFP) string {
	if rfp.DueDate == nil || rfp.DueDate.IsZero() {
		return ""
	}
	return rfp.DueDate.UTC().Format(closeDateLayout)
}
