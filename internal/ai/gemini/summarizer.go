package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/govscout/tender-scout/internal/ai"
	"github.com/govscout/tender-scout/internal/logger"
	"github.com/govscout/tender-scout/internal/profile"
	"github.com/govscout/tender-scout/internal/tender"
	"go.uber.org/zap"
)

//go:embed prompts/summary_system.md
var summarySystemPrompt string

//go:embed prompts/summary_message.md
var summaryMessageTemplate string

// Summarizer asks Gemini to draft an application summary. It never fails:
// any error yields a templated placeholder naming the company and tender.
type Summarizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewSummarizer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Summarizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Summarizer{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (s *Summarizer) Summarize(ctx context.Context, document *tender.Document, companyProfile *profile.Profile) *ai.Summary {
	message := buildPrompt(summaryMessageTemplate, map[string]string{
		"TENDER_TITLE":             orPlaceholder(document.Title),
		"APPLICATION_REQUIREMENTS": orPlaceholder(document.ApplicationRequirements),
		"COMPANY_NAME":             orPlaceholder(companyProfile.CompanyName),
		"INDUSTRY":                 orPlaceholder(companyProfile.Industry),
		"CAPABILITIES":             orPlaceholder(strings.Join(companyProfile.Keywords.Values(), ", ")),
	})

	s.logger.Debug("gemini summary request",
		zap.String("tender_title", document.Title),
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", logger.TruncateForLog(message, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, summarySystemPrompt, message)
	if err != nil {
		return &ai.Summary{
			Text:     fallbackSummary(document, companyProfile),
			Degraded: true,
			Reason:   err.Error(),
		}
	}

	s.logger.Debug("gemini summary response",
		zap.String("tender_title", document.Title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	return &ai.Summary{Text: strings.TrimSpace(raw)}
}

func fallbackSummary(document *tender.Document, companyProfile *profile.Profile) string {
	company := strings.TrimSpace(companyProfile.CompanyName)
	if company == "" {
		company = "Company"
	}

	title := strings.TrimSpace(document.Title)
	if title == "" {
		title = "tender"
	}

	return fmt.Sprintf("Application summary for %s applying to %s. Manual completion required.", company, title)
}
