package portals

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/govscout/tender-scout/internal/tender"
	"go.uber.org/zap"
)

const deadlineCheckPortal = "Check Portal for Details"

// StaticSource deterministically synthesizes candidates from the search
// keywords. It is the default strategy and the model every live-strategy
// fallback degrades towards.
type StaticSource struct {
	logger *zap.Logger
}

func NewStatic(logger *zap.Logger) *StaticSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaticSource{logger: logger}
}

func (s *StaticSource) Name() string { return "static" }

// Fetch returns one templated candidate per portal, plus a location-specific
// one when the location is known. It always succeeds.
func (s *StaticSource) Fetch(_ context.Context, keywords, location string) (*tender.Candidates, error) {
	titled := titleCase(keywords)

	found := &tender.Candidates{}
	found.Append(
		&tender.Candidate{
			Title:           fmt.Sprintf("%s Solutions for Government Sector", titled),
			Deadline:        deadlineCheckPortal,
			Link:            "https://gem.gov.in",
			Source:          "GeM",
			KeywordsMatched: keywords,
			Description:     fmt.Sprintf("A tender for %s solutions across government departments.", keywords),
		},
		&tender.Candidate{
			Title:           fmt.Sprintf("Request for Proposals: %s Implementation", titled),
			Deadline:        deadlineCheckPortal,
			Link:            "https://eprocure.gov.in",
			Source:          "eProcure",
			KeywordsMatched: keywords,
			Description:     fmt.Sprintf("Government initiative seeking %s solutions for enhancing public services.", keywords),
		},
		&tender.Candidate{
			Title:           fmt.Sprintf("Innovation Grant for %s Startups", titled),
			Deadline:        deadlineCheckPortal,
			Link:            "https://www.startupindia.gov.in",
			Source:          "Startup India",
			KeywordsMatched: keywords,
			Description:     fmt.Sprintf("Funding opportunity for startups working in %s sector.", keywords),
		},
	)

	if location != "" {
		found.Append(&tender.Candidate{
			Title:           fmt.Sprintf("Local %s Initiative in %s", titled, location),
			Deadline:        deadlineCheckPortal,
			Link:            "https://gem.gov.in",
			Source:          "GeM",
			KeywordsMatched: fmt.Sprintf("%s %s", keywords, location),
			Description:     fmt.Sprintf("Local government tender for %s solutions in %s region.", keywords, location),
		})
	}

	s.logger.Debug("synthesized sample tenders",
		zap.String("keywords", keywords),
		zap.Int("count", found.Len()),
	)

	return found, nil
}

// titleCase uppercases the first rune of every space-separated word and
// lowercases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
