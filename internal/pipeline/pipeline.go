package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/govscout/tender-scout/internal/ai"
	"github.com/govscout/tender-scout/internal/portals"
	"github.com/govscout/tender-scout/internal/profile"
	"github.com/govscout/tender-scout/internal/tender"
)

// maxCandidates bounds how many discovered tenders go through the LLM
// stages; each one costs three model calls.
const maxCandidates = 3

const (
	// MsgNeedMoreDetails is returned when no keywords could be extracted
	// from the query.
	MsgNeedMoreDetails = "Please provide more details about your company, industry, and location to find relevant tenders."

	// MsgNoEligibleTenders is returned when every candidate was screened out.
	MsgNoEligibleTenders = "No eligible tenders found matching your profile."

	msgNoTendersFormat = "No tenders found for keywords: %s. Try different search terms."
)

// Deps carries the pipeline's collaborators. Source decides where tenders
// come from (static samples or live portals); the AI components are
// injected so tests can run without a model backend.
type Deps struct {
	Source     portals.Source
	Enricher   ai.Enricher
	Scorer     ai.Scorer
	Summarizer ai.Summarizer

	// Fetcher optionally prefetches linked tender pages before extraction.
	Fetcher *portals.Fetcher

	Logger *zap.Logger
}

// Pipeline runs the full discovery flow: profile extraction, tender search,
// per-candidate enrichment, eligibility screening, and report rendering. Run
// always produces user-facing text; degraded stages are logged, not raised.
type Pipeline struct {
	deps Deps
}

func New(deps Deps) *Pipeline {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Pipeline{deps: deps}
}

// step summarizes the eligibility screening for logging.
type step struct {
	Initial int
	Dropped int
	Left    int
}

// Run processes a free-text company description and returns the formatted
// tender report.
func (p *Pipeline) Run(ctx context.Context, query string) string {
	log := p.deps.Logger

	companyProfile := profile.Extract(query)

	log.Info("profile extracted",
		zap.String("company_name", companyProfile.CompanyName),
		zap.String("industry", companyProfile.Industry),
		zap.String("location", companyProfile.Location),
		zap.Strings("keywords", companyProfile.Keywords.Values()),
	)

	if companyProfile.Keywords.Len() == 0 {
		return MsgNeedMoreDetails
	}

	keywords := strings.Join(companyProfile.Keywords.First(2), " ")

	candidates, err := p.deps.Source.Fetch(ctx, keywords, companyProfile.Location)
	if err != nil {
		log.Warn("tender search failed",
			zap.String("source", p.deps.Source.Name()),
			zap.Error(err),
		)
		return fmt.Sprintf(msgNoTendersFormat, keywords)
	}

	if candidates == nil || candidates.Len() == 0 {
		return fmt.Sprintf(msgNoTendersFormat, keywords)
	}

	log.Info("tenders discovered",
		zap.String("source", p.deps.Source.Name()),
		zap.Int("count", candidates.Len()),
		zap.Strings("titles", candidates.Titles()),
	)

	selected := candidates.First(maxCandidates)
	entries := make([]*reportEntry, 0, len(selected))

	for i, candidate := range selected {
		entry := p.process(ctx, i+1, candidate, companyProfile)
		if entry != nil {
			entries = append(entries, entry)
		}
	}

	screening := step{
		Initial: len(selected),
		Dropped: len(selected) - len(entries),
		Left:    len(entries),
	}
	log.Info("eligibility screening finished",
		zap.Int("initial", screening.Initial),
		zap.Int("dropped", screening.Dropped),
		zap.Int("left", screening.Left),
	)

	if len(entries) == 0 {
		return MsgNoEligibleTenders
	}

	return renderReport(companyProfile, entries)
}

// process runs one candidate through enrichment, screening, and
// summarization. It returns nil for ineligible candidates.
func (p *Pipeline) process(ctx context.Context, index int, candidate *tender.Candidate, companyProfile *profile.Profile) *reportEntry {
	log := p.deps.Logger

	p.prefetchDocument(ctx, candidate)

	extraction := p.deps.Enricher.Enrich(ctx, candidate)
	if extraction.Degraded {
		log.Warn("tender extraction degraded",
			zap.String("tender_title", candidate.Title),
			zap.String("reason", extraction.Reason),
		)
	}

	assessment := p.deps.Scorer.Score(ctx, extraction.Document, companyProfile)
	if assessment.Degraded {
		log.Warn("eligibility assessment degraded",
			zap.String("tender_title", candidate.Title),
			zap.String("reason", assessment.Reason),
		)
	}

	if !assessment.Eligible {
		log.Debug("tender dropped as ineligible",
			zap.String("tender_title", candidate.Title),
			zap.Int("match_score", assessment.MatchScore),
			zap.Strings("reasons", assessment.Reasons),
		)
		return nil
	}

	summary := p.deps.Summarizer.Summarize(ctx, extraction.Document, companyProfile)
	if summary.Degraded {
		log.Warn("application summary degraded",
			zap.String("tender_title", candidate.Title),
			zap.String("reason", summary.Reason),
		)
	}

	return &reportEntry{
		Index:      index,
		Candidate:  candidate,
		Document:   extraction.Document,
		Assessment: assessment,
		Summary:    summary,
	}
}

// prefetchDocument pulls the linked page body into the candidate description
// so the enricher sees real tender text. Failures leave the candidate as is.
func (p *Pipeline) prefetchDocument(ctx context.Context, candidate *tender.Candidate) {
	if p.deps.Fetcher == nil {
		return
	}
	if !strings.HasPrefix(candidate.Link, "http") {
		return
	}

	body, err := p.deps.Fetcher.Fetch(ctx, candidate.Link)
	if err != nil {
		p.deps.Logger.Debug("document prefetch failed",
			zap.String("link", candidate.Link),
			zap.Error(err),
		)
		return
	}

	if candidate.Description == "" {
		candidate.Description = body
		return
	}
	candidate.Description += "\n" + body
}
