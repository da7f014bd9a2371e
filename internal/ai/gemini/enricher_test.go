package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/govscout/tender-scout/internal/tender"
)

type stubGenerator struct {
	output  string
	err     error
	systems []string
	inputs  []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.systems = append(s.systems, system)
	s.inputs = append(s.inputs, message)
	return s.output, s.err
}

func (s *stubGenerator) Model() string { return "stub-model" }

func TestEnrichParsesDocument(t *testing.T) {
	generator := &stubGenerator{output: `{
		"title": "Cloud Services Tender",
		"description": "Migration of legacy systems",
		"deadline": "2026-09-30",
		"budget_range": "50 lakh",
		"eligibility_criteria": "Registered MSME",
		"application_requirements": "Technical proposal",
		"contact_details": "tenders@example.gov.in",
		"tender_id": "GEM-2026-1234"
	}`}

	enricher := NewEnricher(generator, 0, nil)
	extraction := enricher.Enrich(context.Background(), &tender.Candidate{Title: "Cloud Services Tender"})

	if extraction.Degraded {
		t.Fatalf("expected parsed extraction, got degraded: %s", extraction.Reason)
	}

	doc := extraction.Document
	if doc.Title != "Cloud Services Tender" {
		t.Errorf("unexpected title: %q", doc.Title)
	}
	if doc.Deadline != "2026-09-30" {
		t.Errorf("unexpected deadline: %q", doc.Deadline)
	}
	if doc.TenderID != "GEM-2026-1234" {
		t.Errorf("unexpected tender id: %q", doc.TenderID)
	}
}

func TestEnrichHandlesFencedJSON(t *testing.T) {
	generator := &stubGenerator{output: "```json\n{\"title\": \"Fenced Tender\"}\n```"}

	enricher := NewEnricher(generator, 0, nil)
	extraction := enricher.Enrich(context.Background(), &tender.Candidate{Title: "Fenced Tender"})

	if extraction.Degraded {
		t.Fatalf("expected parsed extraction, got degraded: %s", extraction.Reason)
	}

	if extraction.Document.Title != "Fenced Tender" {
		t.Errorf("unexpected title: %q", extraction.Document.Title)
	}
}

func TestEnrichDegradesOnMalformedResponse(t *testing.T) {
	generator := &stubGenerator{output: "this is not json at all"}

	candidate := &tender.Candidate{
		Title:       "Broken Tender",
		Description: strings.Repeat("x", 500),
	}

	enricher := NewEnricher(generator, 0, nil)
	extraction := enricher.Enrich(context.Background(), candidate)

	if !extraction.Degraded {
		t.Fatal("expected degraded extraction")
	}

	doc := extraction.Document
	if doc.Title != "Document Parse Error" {
		t.Errorf("unexpected title: %q", doc.Title)
	}
	if !strings.HasSuffix(doc.Description, "...") {
		t.Errorf("expected truncated excerpt, got %q", doc.Description)
	}
	if doc.EligibilityCriteria != "Review document manually" {
		t.Errorf("unexpected eligibility placeholder: %q", doc.EligibilityCriteria)
	}
	if extraction.Raw != generator.output {
		t.Errorf("expected raw response to be carried, got %q", extraction.Raw)
	}
}

func TestEnrichDegradesOnGeneratorError(t *testing.T) {
	generator := &stubGenerator{err: errors.New("api unavailable")}

	enricher := NewEnricher(generator, 0, nil)
	extraction := enricher.Enrich(context.Background(), &tender.Candidate{Title: "Any Tender"})

	if !extraction.Degraded {
		t.Fatal("expected degraded extraction")
	}
	if extraction.Reason != "api unavailable" {
		t.Errorf("unexpected reason: %q", extraction.Reason)
	}
}

func TestEnrichTruncatesLongInput(t *testing.T) {
	generator := &stubGenerator{output: `{"title": "ok"}`}

	candidate := &tender.Candidate{
		Title:       "Long Tender",
		Description: strings.Repeat("a", 5000),
	}

	enricher := NewEnricher(generator, 0, nil)
	enricher.Enrich(context.Background(), candidate)

	if len(generator.inputs) != 1 {
		t.Fatalf("expected a single request, got %d", len(generator.inputs))
	}
	if got := len([]rune(generator.inputs[0])); got > 2000 {
		t.Errorf("expected prompt capped at 2000 runes, got %d", got)
	}
}
