package gemini

import (
	"context"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/govscout/tender-scout/internal/ai"
	"github.com/govscout/tender-scout/internal/logger"
	"github.com/govscout/tender-scout/internal/tender"
	"go.uber.org/zap"
)

//go:embed prompts/enrich_system.md
var enrichSystemPrompt string

const (
	// The extraction prompt carries at most this many characters of the raw
	// record; tender pages are front-loaded and anything further rarely helps.
	maxExtractionInput = 2000

	// Degraded-document placeholders.
	degradedDocumentTitle = "Document Parse Error"
	manualReviewNote      = "Review document manually"

	degradedExcerptLimit = 200
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

// Enricher asks Gemini to extract the normalized tender schema from a raw
// candidate. It never fails: unparseable responses and request errors yield
// a degraded document carrying the raw excerpt.
type Enricher struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

const defaultMaxLogLength = 200

func NewEnricher(generator contentGenerator, maxLogLength int, log *zap.Logger) *Enricher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Enricher{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (e *Enricher) Enrich(ctx context.Context, candidate *tender.Candidate) *ai.Extraction {
	content := candidate.Text()
	message := firstRunes(content, maxExtractionInput)

	e.logger.Debug("gemini extraction request",
		zap.String("tender_title", candidate.Title),
		zap.Int("prompt_length", utf8.RuneCountInString(message)),
		zap.String("prompt_preview", logger.TruncateForLog(message, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, enrichSystemPrompt, message)
	if err != nil {
		return degradedExtraction(content, "", err.Error())
	}

	e.logger.Debug("gemini extraction response",
		zap.String("tender_title", candidate.Title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	data, err := parseJSONObject(raw)
	if err != nil {
		return degradedExtraction(content, raw, err.Error())
	}

	return &ai.Extraction{
		Document: &tender.Document{
			Title:                   coerceString(data["title"]),
			Description:             coerceString(data["description"]),
			Deadline:                coerceString(data["deadline"]),
			BudgetRange:             coerceString(data["budget_range"]),
			EligibilityCriteria:     coerceString(data["eligibility_criteria"]),
			ApplicationRequirements: coerceString(data["application_requirements"]),
			ContactDetails:          coerceString(data["contact_details"]),
			TenderID:                coerceString(data["tender_id"]),
		},
		Raw: raw,
	}
}

// degradedExtraction builds the recoverable placeholder document: an error
// title, an excerpt of the input as description, and manual-review markers.
func degradedExtraction(content, raw, reason string) *ai.Extraction {
	excerpt := firstRunes(content, degradedExcerptLimit)
	if strings.TrimSpace(excerpt) != "" {
		excerpt += "..."
	}

	return &ai.Extraction{
		Document: &tender.Document{
			Title:                   degradedDocumentTitle,
			Description:             excerpt,
			EligibilityCriteria:     manualReviewNote,
			ApplicationRequirements: manualReviewNote,
		},
		Degraded: true,
		Reason:   reason,
		Raw:      raw,
	}
}
