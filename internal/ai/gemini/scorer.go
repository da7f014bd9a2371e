package gemini

import (
	"context"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/govscout/tender-scout/internal/ai"
	"github.com/govscout/tender-scout/internal/logger"
	"github.com/govscout/tender-scout/internal/profile"
	"github.com/govscout/tender-scout/internal/tender"
	"go.uber.org/zap"
)

//go:embed prompts/score_system.md
var scoreSystemPrompt string

//go:embed prompts/score_message.md
var scoreMessageTemplate string

// Optimistic default used whenever the LLM is unavailable or unparseable.
// The pipeline keeps producing output at the cost of a known optimistic
// bias; degraded assessments are logged so the bias is visible.
const (
	defaultMatchScore  = 75
	defaultReason      = "General eligibility assumed"
	defaultMissingReq  = "Manual review required"
	placeholderNoValue = "N/A"
	maxAssessmentScore = 100
	minAssessmentScore = 0
)

// Scorer asks Gemini whether the company profile fits a tender document.
// It never fails: every failure mode yields the fixed optimistic default.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Scorer{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (s *Scorer) Score(ctx context.Context, document *tender.Document, companyProfile *profile.Profile) *ai.Assessment {
	message := buildPrompt(scoreMessageTemplate, map[string]string{
		"COMPANY_NAME":             orPlaceholder(companyProfile.CompanyName),
		"INDUSTRY":                 orPlaceholder(companyProfile.Industry),
		"LOCATION":                 orPlaceholder(companyProfile.Location),
		"BUDGET_RANGE":             orPlaceholder(companyProfile.BudgetRange),
		"KEYWORDS":                 orPlaceholder(strings.Join(companyProfile.Keywords.Values(), ", ")),
		"TENDER_TITLE":             orPlaceholder(document.Title),
		"ELIGIBILITY_CRITERIA":     orPlaceholder(document.EligibilityCriteria),
		"TENDER_BUDGET":            orPlaceholder(document.BudgetRange),
		"APPLICATION_REQUIREMENTS": orPlaceholder(document.ApplicationRequirements),
	})

	s.logger.Debug("gemini eligibility request",
		zap.String("tender_title", document.Title),
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", logger.TruncateForLog(message, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, scoreSystemPrompt, message)
	if err != nil {
		return degradedAssessment("", err.Error())
	}

	s.logger.Debug("gemini eligibility response",
		zap.String("tender_title", document.Title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	data, err := parseJSONObject(raw)
	if err != nil {
		return degradedAssessment(raw, err.Error())
	}

	return &ai.Assessment{
		Eligible:            coerceBool(data["eligible"]),
		MatchScore:          clampScore(coerceFloat(data["match_score"])),
		Reasons:             coerceStrings(data["reasons"]),
		MissingRequirements: coerceStrings(data["missing_requirements"]),
		Raw:                 raw,
	}
}

func degradedAssessment(raw, reason string) *ai.Assessment {
	return &ai.Assessment{
		Eligible:            true,
		MatchScore:          defaultMatchScore,
		Reasons:             []string{defaultReason},
		MissingRequirements: []string{defaultMissingReq},
		Degraded:            true,
		Reason:              reason,
		Raw:                 raw,
	}
}

func clampScore(score float64) int {
	if math.IsNaN(score) {
		return minAssessmentScore
	}
	if score < minAssessmentScore {
		return minAssessmentScore
	}
	if score > maxAssessmentScore {
		return maxAssessmentScore
	}
	return int(math.Round(score))
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholderNoValue
	}
	return s
}

// buildPrompt substitutes {{KEY}} placeholders in the embedded template.
func buildPrompt(template string, values map[string]string) string {
	prompt := template
	for key, value := range values {
		prompt = strings.ReplaceAll(prompt, "{{"+key+"}}", value)
	}
	return strings.TrimSpace(prompt)
}
