package ai

import (
	"context"

	"github.com/govscout/tender-scout/internal/profile"
	"github.com/govscout/tender-scout/internal/tender"
)

// The three LLM-backed components never fail outward: every call returns a
// result carrying an explicit Degraded tag instead of an error, and a
// degraded result always holds a usable fallback value. Callers branch on
// the tag, not on suppressed errors.

// Extraction is the outcome of parsing a raw tender into a normalized
// document.
type Extraction struct {
	Document *tender.Document
	Degraded bool
	Reason   string
	Raw      string
}

// Assessment is the outcome of judging profile-vs-tender fit.
type Assessment struct {
	Eligible            bool
	MatchScore          int
	Reasons             []string
	MissingRequirements []string
	Degraded            bool
	Reason              string
	Raw                 string
}

// Summary is the outcome of drafting an application summary.
type Summary struct {
	Text     string
	Degraded bool
	Reason   string
}

type Enricher interface {
	Enrich(ctx context.Context, candidate *tender.Candidate) *Extraction
}

type Scorer interface {
	Score(ctx context.Context, document *tender.Document, companyProfile *profile.Profile) *Assessment
}

type Summarizer interface {
	Summarize(ctx context.Context, document *tender.Document, companyProfile *profile.Profile) *Summary
}
