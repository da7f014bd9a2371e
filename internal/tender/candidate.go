package tender

import (
	"fmt"
	"strings"
)

// Candidate is a raw tender record as discovered on a portal. Records coming
// from the live scraper may be partial; Note and Error mark degraded entries
// that are still processed downstream.
type Candidate struct {
	Title           string `json:"title"`
	Deadline        string `json:"deadline"`
	Link            string `json:"link"`
	Source          string `json:"source"`
	KeywordsMatched string `json:"keywords_matched"`
	Description     string `json:"description,omitempty"`
	Note            string `json:"note,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Text renders the candidate as labeled lines for LLM consumption.
func (c *Candidate) Text() string {
	var b strings.Builder

	writeLine := func(label, value string) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	writeLine("Title", c.Title)
	writeLine("Source", c.Source)
	writeLine("Link", c.Link)
	writeLine("Deadline", c.Deadline)
	writeLine("Keywords matched", c.KeywordsMatched)
	writeLine("Description", c.Description)
	writeLine("Note", c.Note)
	writeLine("Error", c.Error)

	return strings.TrimSpace(b.String())
}

type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) Append(items ...*Candidate) {
	c.Items = append(c.Items, items...)
}

// First returns up to n candidates in discovery order.
func (c *Candidates) First(n int) []*Candidate {
	if n <= 0 {
		return nil
	}
	if n > len(c.Items) {
		n = len(c.Items)
	}
	return c.Items[:n]
}

func (c *Candidates) Titles() []string {
	titles := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		titles = append(titles, item.Title)
	}
	return titles
}
