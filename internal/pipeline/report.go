package pipeline

import (
	"fmt"
	"strings"

	"github.com/govscout/tender-scout/internal/ai"
	"github.com/govscout/tender-scout/internal/profile"
	"github.com/govscout/tender-scout/internal/tender"
)

const (
	// summaryPreviewLimit caps the application summary inside a report block.
	summaryPreviewLimit = 300

	defaultDeadline = "Check Portal"
	defaultReasons  = "Review required"
	defaultCompany  = "Your Company"
	noValue         = "N/A"
)

// reportEntry is one eligible tender with everything the report block needs.
type reportEntry struct {
	Index      int
	Candidate  *tender.Candidate
	Document   *tender.Document
	Assessment *ai.Assessment
	Summary    *ai.Summary
}

// renderReport produces the final plain-text report: a profile header, one
// block per eligible tender, and a fixed next-steps footer.
func renderReport(companyProfile *profile.Profile, entries []*reportEntry) string {
	var b strings.Builder

	b.WriteString("\nTENDER SEARCH RESULTS FOR: ")
	b.WriteString(orDefault(companyProfile.CompanyName, defaultCompany))
	b.WriteString("\nINDUSTRY: ")
	b.WriteString(orDefault(companyProfile.Industry, noValue))
	b.WriteString("\nLOCATION: ")
	b.WriteString(orDefault(companyProfile.Location, noValue))
	b.WriteString("\n\n")

	for _, entry := range entries {
		b.WriteString(renderBlock(entry))
	}

	b.WriteString("\n📋 NEXT STEPS:\n")
	b.WriteString("1. Visit the portal links to get complete tender documents\n")
	b.WriteString("2. Review eligibility criteria carefully\n")
	b.WriteString("3. Prepare required documents\n")
	b.WriteString("4. Submit before deadline\n")

	return b.String()
}

func renderBlock(entry *reportEntry) string {
	reasons := strings.Join(entry.Assessment.Reasons, ", ")
	if reasons == "" {
		reasons = defaultReasons
	}

	return fmt.Sprintf(`
TENDER %d: %s
SOURCE: %s
LINK: %s
MATCH SCORE: %d%%
DEADLINE: %s

ELIGIBILITY: ✅ Eligible
REASONS: %s

APPLICATION SUMMARY:
%s...

---
`,
		entry.Index,
		entry.Candidate.Title,
		entry.Candidate.Source,
		entry.Candidate.Link,
		entry.Assessment.MatchScore,
		orDefault(entry.Candidate.Deadline, defaultDeadline),
		reasons,
		previewSummary(entry.Summary.Text),
	)
}

// previewSummary truncates to the preview limit; the trailing ellipsis is
// always appended, matching the report's fixed layout.
func previewSummary(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryPreviewLimit {
		return text
	}
	return string(runes[:summaryPreviewLimit])
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
