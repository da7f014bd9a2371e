package portals

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

const defaultNavTimeout = 30 * time.Second

// Browser is the minimal headless-browser surface the live source needs.
// Every operation is bounded by the browser's per-step timeout.
type Browser interface {
	Navigate(url string) error
	Fill(selector, value string) error
	PressEnter(selector string) error
	Click(selector string) error
	// Texts returns the visible text of the title element inside every
	// container matched by containerSelector. An empty titleSelector reads
	// the container itself.
	Texts(containerSelector, titleSelector string) ([]string, error)
	Close() error
}

// BrowserFactory creates a browser for one Fetch call. Construction failure
// is a normal, recoverable condition: the live source falls back to sample
// data when no browser can be started.
type BrowserFactory func(ctx context.Context) (Browser, error)

type chromeBrowser struct {
	ctx        context.Context
	cancels    []context.CancelFunc
	navTimeout time.Duration
}

// NewChromeBrowser starts a headless Chrome via chromedp. The returned
// browser must be closed by the caller.
func NewChromeBrowser(ctx context.Context, navTimeout time.Duration) (Browser, error) {
	if navTimeout <= 0 {
		navTimeout = defaultNavTimeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Run with no actions starts the browser process, so a missing or broken
	// chrome surfaces here instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &chromeBrowser{
		ctx:        browserCtx,
		cancels:    []context.CancelFunc{cancelBrowser, cancelAlloc},
		navTimeout: navTimeout,
	}, nil
}

func (b *chromeBrowser) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(b.ctx, b.navTimeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (b *chromeBrowser) Navigate(url string) error {
	return b.run(
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (b *chromeBrowser) Fill(selector, value string) error {
	return b.run(
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
}

func (b *chromeBrowser) PressEnter(selector string) error {
	return b.run(chromedp.SendKeys(selector, kb.Enter, chromedp.ByQuery))
}

func (b *chromeBrowser) Click(selector string) error {
	return b.run(chromedp.Click(selector, chromedp.ByQuery))
}

func (b *chromeBrowser) Texts(containerSelector, titleSelector string) ([]string, error) {
	script := fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map((el) => {
		const target = %q === "" ? el : el.querySelector(%q);
		return target ? target.innerText.trim() : "";
	}).filter((text) => text.length > 0)`, containerSelector, titleSelector, titleSelector)

	var texts []string
	if err := b.run(chromedp.Evaluate(script, &texts)); err != nil {
		return nil, err
	}
	return texts, nil
}

func (b *chromeBrowser) Close() error {
	for _, cancel := range b.cancels {
		cancel()
	}
	return nil
}
