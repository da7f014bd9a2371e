package tender

import (
	"strings"
	"testing"
)

func TestCandidateText(t *testing.T) {
	t.Parallel()

	c := &Candidate{
		Title:           "Tech Solutions for Government Sector",
		Deadline:        "Check Portal for Details",
		Link:            "https://gem.gov.in",
		Source:          "GeM",
		KeywordsMatched: "tech ai",
	}

	text := c.Text()

	for _, want := range []string{
		"Title: Tech Solutions for Government Sector",
		"Source: GeM",
		"Link: https://gem.gov.in",
		"Keywords matched: tech ai",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in rendered text:\n%s", want, text)
		}
	}

	if strings.Contains(text, "Note:") || strings.Contains(text, "Error:") {
		t.Fatalf("empty fields must be omitted:\n%s", text)
	}
}

func TestCandidatesFirst(t *testing.T) {
	t.Parallel()

	c := &Candidates{}
	c.Append(
		&Candidate{Title: "one"},
		&Candidate{Title: "two"},
		&Candidate{Title: "three"},
		&Candidate{Title: "four"},
	)

	first := c.First(3)
	if len(first) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(first))
	}

	if first[0].Title != "one" || first[2].Title != "three" {
		t.Fatalf("expected discovery order, got %v", c.Titles()[:3])
	}

	if got := c.First(10); len(got) != 4 {
		t.Fatalf("expected all candidates, got %d", len(got))
	}

	if got := c.First(0); got != nil {
		t.Fatalf("expected nil for non-positive n, got %v", got)
	}
}
