package portals

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubBrowser scripts per-selector behavior for the live source.
type stubBrowser struct {
	navigateErr   map[string]error
	fillOK        map[string]bool
	clickOK       map[string]bool
	texts         map[string][]string
	pressed       []string
	filledValues  map[string]string
	closed        bool
	navigateCalls []string
}

func newStubBrowser() *stubBrowser {
	return &stubBrowser{
		navigateErr:  make(map[string]error),
		fillOK:       make(map[string]bool),
		clickOK:      make(map[string]bool),
		texts:        make(map[string][]string),
		filledValues: make(map[string]string),
	}
}

func (b *stubBrowser) Navigate(url string) error {
	b.navigateCalls = append(b.navigateCalls, url)
	return b.navigateErr[url]
}

func (b *stubBrowser) Fill(selector, value string) error {
	if !b.fillOK[selector] {
		return errors.New("selector not found")
	}
	b.filledValues[selector] = value
	return nil
}

func (b *stubBrowser) PressEnter(selector string) error {
	b.pressed = append(b.pressed, selector)
	return nil
}

func (b *stubBrowser) Click(selector string) error {
	if !b.clickOK[selector] {
		return errors.New("selector not found")
	}
	return nil
}

func (b *stubBrowser) Texts(containerSelector, _ string) ([]string, error) {
	return b.texts[containerSelector], nil
}

func (b *stubBrowser) Close() error {
	b.closed = true
	return nil
}

func factoryFor(b Browser, err error) BrowserFactory {
	return func(context.Context) (Browser, error) {
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

func newTestLive(factory BrowserFactory) *LiveSource {
	source := NewLive(factory, nil)
	source.pause = 0
	return source
}

func TestLiveFetchBrowserUnavailable(t *testing.T) {
	t.Parallel()

	source := newTestLive(factoryFor(nil, errors.New("chrome not found")))

	found, err := source.Fetch(context.Background(), "tech ai", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if found.Len() != len(DefaultPortals()) {
		t.Fatalf("expected one sample per portal, got %d", found.Len())
	}

	for _, c := range found.Items {
		if c.Note != noteBrowserUnavailable {
			t.Fatalf("expected browser-unavailable note, got %q", c.Note)
		}
		if !strings.Contains(c.Title, "tech ai") {
			t.Fatalf("expected keywords in sample title, got %q", c.Title)
		}
	}
}

func TestLiveFetchScrapesSuccessfully(t *testing.T) {
	t.Parallel()

	browser := newStubBrowser()
	// GeM: second search selector works, first result selector yields titles.
	browser.fillOK[`input[name*="search" i]`] = true
	browser.texts[".tender-item"] = []string{
		"Supply of AI analytics platform",
		"  Data center modernization  ",
	}
	// eProcure: search box works, first submit button works, rows found.
	browser.fillOK[`input[type="text"]`] = true
	browser.clickOK[`input[value*="Search" i]`] = true
	browser.texts["tr"] = []string{"Road construction tender", "Bridge maintenance", "Solar plant", "Extra row"}
	// Startup India: nothing matches, degrades to its sample entry.

	source := newTestLive(factoryFor(browser, nil))

	found, err := source.Fetch(context.Background(), "tech", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !browser.closed {
		t.Fatal("expected browser to be closed")
	}

	// 2 GeM titles + 3 eProcure rows (capped) + 1 Startup India sample.
	if found.Len() != 6 {
		t.Fatalf("expected 6 candidates, got %d: %v", found.Len(), found.Titles())
	}

	if got := browser.filledValues[`input[name*="search" i]`]; got != "tech" {
		t.Fatalf("expected keywords typed into search box, got %q", got)
	}

	if len(browser.pressed) == 0 {
		t.Fatal("expected Enter press for portals without submit button")
	}

	first := found.Items[0]
	if first.Title != "Supply of AI analytics platform" || first.Source != "GeM" {
		t.Fatalf("unexpected first candidate: %+v", first)
	}

	if first.KeywordsMatched != "tech" || first.Deadline != deadlineCheckPortal {
		t.Fatalf("scraped candidate missing defaults: %+v", first)
	}

	last := found.Items[found.Len()-1]
	if !strings.Contains(last.Title, "Startup grants available for tech") {
		t.Fatalf("expected Startup India sample entry, got %q", last.Title)
	}
}

func TestLiveFetchNavigationFailure(t *testing.T) {
	t.Parallel()

	browser := newStubBrowser()
	browser.navigateErr["https://gem.gov.in"] = errors.New("timeout")
	browser.navigateErr["https://eprocure.gov.in"] = errors.New("timeout")
	browser.navigateErr["https://www.startupindia.gov.in"] = errors.New("timeout")

	source := newTestLive(factoryFor(browser, nil))

	found, err := source.Fetch(context.Background(), "tech", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if found.Len() != 3 {
		t.Fatalf("expected one error entry per portal, got %d", found.Len())
	}

	for _, c := range found.Items {
		if !strings.HasPrefix(c.Title, "Error accessing ") {
			t.Fatalf("expected error entry title, got %q", c.Title)
		}
		if c.Error == "" || c.Deadline != "N/A" {
			t.Fatalf("expected degraded error entry, got %+v", c)
		}
	}
}

func TestLiveFetchNeverEmpty(t *testing.T) {
	t.Parallel()

	source := newTestLive(factoryFor(newStubBrowser(), nil))
	source.portals = nil

	found, err := source.Fetch(context.Background(), "tech", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if found.Len() != 1 {
		t.Fatalf("expected the generic fallback candidate, got %d", found.Len())
	}

	if found.Items[0].Note != noteSampleOnly {
		t.Fatalf("expected sample-only note, got %q", found.Items[0].Note)
	}
}
