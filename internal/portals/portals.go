package portals

import (
	"context"
	"strings"

	"github.com/govscout/tender-scout/internal/tender"
)

// Source supplies candidate tenders for a keyword search. Implementations
// must always return a non-empty list: every failure mode degrades to a
// synthetic candidate instead of an error, so the pipeline always has
// something to report.
type Source interface {
	Name() string
	Fetch(ctx context.Context, keywords, location string) (*tender.Candidates, error)
}

// Portal describes one external tender site and the selector guesses used to
// search it. Portal markup drifts, so every selector is a prioritized list of
// attempts rather than a single known-good value.
type Portal struct {
	Name string
	URL  string

	// SearchSelectors locate the search box; the first fillable one wins.
	SearchSelectors []string
	// SubmitSelectors locate the search button. When empty the search is
	// submitted by pressing Enter in the search box.
	SubmitSelectors []string
	// ResultSelectors locate result containers; the first selector that
	// yields any text wins.
	ResultSelectors []string
	// TitleSelector picks the title element inside a result container.
	// Empty means the container's own text.
	TitleSelector string

	// SampleTitle is the fallback title template (one %s, the keywords) used
	// when scraping this portal fails after navigation.
	SampleTitle string

	MaxResults int
}

// Host returns the portal host the way it is shown in reports.
func (p Portal) Host() string {
	if idx := strings.Index(p.URL, "//"); idx != -1 {
		return p.URL[idx+2:]
	}
	return p.URL
}

// DefaultPortals lists the three government portals targeted by the live
// strategy. The selector lists were collected by trial and error against the
// real sites.
func DefaultPortals() []Portal {
	return []Portal{
		{
			Name: "GeM",
			URL:  "https://gem.gov.in",
			SearchSelectors: []string{
				`input[placeholder*="search" i]`,
				`input[name*="search" i]`,
				`#searchBox`,
			},
			ResultSelectors: []string{
				".tender-item",
				".result-item",
				".tender-card",
				`tr[class*="row"]`,
			},
			TitleSelector: "a, .title, .tender-title",
			SampleTitle:   "Sample tender for %s",
			MaxResults:    5,
		},
		{
			Name: "eProcure",
			URL:  "https://eprocure.gov.in",
			SearchSelectors: []string{
				`input[type="text"]`,
			},
			SubmitSelectors: []string{
				`input[value*="Search" i]`,
				`button[type="submit"]`,
			},
			ResultSelectors: []string{
				"tr",
			},
			TitleSelector: "td",
			SampleTitle:   "Tenders available for %s",
			MaxResults:    3,
		},
		{
			Name: "Startup India",
			URL:  "https://www.startupindia.gov.in",
			SearchSelectors: []string{
				`input[placeholder*="Search" i]`,
			},
			ResultSelectors: []string{
				".result",
				".grant",
				".scheme",
			},
			TitleSelector: "h3, .title, a",
			SampleTitle:   "Startup grants available for %s",
			MaxResults:    3,
		},
	}
}
