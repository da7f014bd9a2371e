package profile

import (
	"regexp"
	"strings"
)

// Pattern order matters: the first non-empty match wins for every field, and
// the industry vocabulary is scanned in declaration order so the keyword set
// has a stable insertion order.
var (
	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)company[:\s]+([^\n,]+)`),
		regexp.MustCompile(`(?i)startup[:\s]+([^\n,]+)`),
		regexp.MustCompile(`(?i)organization[:\s]+([^\n,]+)`),
		regexp.MustCompile(`(?i)firm[:\s]+([^\n,]+)`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)location[:\s]+([^\n,]+)`),
		regexp.MustCompile(`(?i)based in[:\s]+([^\n,]+)`),
		regexp.MustCompile(`(?i)from[:\s]+([^\n,]+)`),
		regexp.MustCompile(`(?i)city[:\s]+([^\n,]+)`),
	}

	budgetPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)budget[:\s]+([0-9,]+(?:\s*(?:lakh|crore|million|k))?)`),
		regexp.MustCompile(`(?i)funding[:\s]+([0-9,]+(?:\s*(?:lakh|crore|million|k))?)`),
		regexp.MustCompile(`(?i)investment[:\s]+([0-9,]+(?:\s*(?:lakh|crore|million|k))?)`),
	}

	companySizePattern = regexp.MustCompile(`(?i)([0-9,]+)\s*employees`)

	stageKeywordPattern = regexp.MustCompile(`(?i)\b(?:innovation|research|development|prototype|pilot|scale|growth)\b`)
)

// industryVocabulary is matched as plain substrings, case-insensitively. The
// first hit becomes the profile industry; every hit joins the keyword set.
var industryVocabulary = []string{
	"tech",
	"healthcare",
	"fintech",
	"agriculture",
	"manufacturing",
	"education",
	"retail",
	"logistics",
	"renewable energy",
	"ai",
	"blockchain",
}

// Extract builds a company profile from free text. It never fails: fields
// without a recognizable pattern stay empty and the extracted values are kept
// as-is, without validation.
func Extract(text string) *Profile {
	p := &Profile{
		Keywords:    NewKeywordSet(),
		Preferences: make(map[string]any),
	}

	p.CompanyName = firstMatch(companyPatterns, text)
	p.Location = firstMatch(locationPatterns, text)
	p.BudgetRange = firstMatch(budgetPatterns, text)

	if match := companySizePattern.FindStringSubmatch(text); match != nil {
		p.CompanySize = strings.TrimSpace(match[1]) + " employees"
	}

	lowered := strings.ToLower(text)
	for _, industry := range industryVocabulary {
		if !strings.Contains(lowered, industry) {
			continue
		}
		if p.Industry == "" {
			p.Industry = industry
		}
		p.Keywords.Add(industry)
	}

	for _, keyword := range stageKeywordPattern.FindAllString(text, -1) {
		p.Keywords.Add(keyword)
	}

	return p
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			if value := strings.TrimSpace(match[1]); value != "" {
				return value
			}
		}
	}
	return ""
}
