package pricecharting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/pricecharting")

// ErrNoBrowser is a configuration failure, not a scrape failure. Callers
// report it as-is instead of retrying.
var ErrNoBrowser = errors.New("no usable chrome/chromium binary, set CHROME_PATH or install chromium")

var browserCandidates = []string{
	"/usr/bin/google-chrome-stable",
	"/usr/bin/google-chrome",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/snap/bin/chromium",
}

// ResolveBrowser locates a browser binary, preferring the CHROME_PATH
// environment variable over the well-known install locations.
func ResolveBrowser() (string, error) {
	if p := os.Getenv("CHROME_PATH"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	for _, p := range browserCandidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrNoBrowser
}

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.9,tr-TR;q=0.8"
	referrer       = BaseUrl + "/"
	cookieDomain   = ".pricecharting.com"

	navigateTimeout = 60 * time.Second
	selectorTimeout = 15 * time.Second
)

// selector the render waits on before scrolling, the same shape Parse
// iterates afterwards
const waitSelector = `table.selling_table td.meta a[href^="/offer/"]`

type ClientOptions struct {
	// resolved with ResolveBrowser when empty
	ExecPath string
	// directory the browser profile and last.html live under
	DataDir string
}

type Client struct {
	opts ClientOptions
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.ExecPath == "" {
		exe, err := ResolveBrowser()
		if err != nil {
			return nil, err
		}
		opts.ExecPath = exe
	}
	if opts.DataDir == "" {
		opts.DataDir = "data"
	}
	err := os.MkdirAll(opts.DataDir, 0755)
	if err != nil {
		return nil, err
	}
	return &Client{opts: opts}, nil
}

// LastMarkupPath is where the most recent rendered markup is kept for
// diagnostic replay.
func (c *Client) LastMarkupPath() string {
	return filepath.Join(c.opts.DataDir, "last.html")
}

// Render drives a headless browser over the listing url, scrolls until the
// lazily loaded rows converge and returns the final markup. The browser
// session is torn down on every path out of here.
func (c *Client) Render(ctx context.Context, listingUrl, cookie string) (string, error) {
	ctx, span := tracer.Start(ctx, "Render")
	defer span.End()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(c.opts.ExecPath),
		chromedp.UserAgent(userAgent),
		chromedp.WindowSize(1280, 900),
		chromedp.UserDataDir(filepath.Join(c.opts.DataDir, "chrome")),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.NoSandbox,
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, navigateTimeout)
	defer cancelTimeout()

	err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{
			"Accept-Language": acceptLanguage,
			"Referer":         referrer,
		}),
		setCookies(cookie),
		chromedp.Navigate(listingUrl),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "navigation failed")
		return "", fmt.Errorf("navigate %s: %w", listingUrl, err)
	}

	// the selector may legitimately never appear (empty collection),
	// so a timeout here is tolerated rather than fatal
	waitCtx, cancelWait := context.WithTimeout(browserCtx, selectorTimeout)
	err = chromedp.Run(waitCtx, chromedp.WaitReady(waitSelector, chromedp.ByQuery))
	cancelWait()
	if err != nil {
		slog.WarnContext(ctx, "listing rows never appeared", "url", listingUrl, "err", err)
	}

	err = scrollToEnd(browserCtx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scroll convergence failed")
		return "", fmt.Errorf("scroll %s: %w", listingUrl, err)
	}

	var html string
	err = chromedp.Run(browserCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "markup capture failed")
		return "", fmt.Errorf("capture markup: %w", err)
	}

	err = os.WriteFile(c.LastMarkupPath(), []byte(html), 0644)
	if err != nil {
		slog.WarnContext(ctx, "failed to persist last markup", "err", err)
	}

	return html, nil
}

// Fetch renders the listing and parses it into offers.
func (c *Client) Fetch(ctx context.Context, listingUrl, cookie string) ([]Offer, error) {
	html, err := c.Render(ctx, listingUrl, cookie)
	if err != nil {
		return nil, err
	}
	return Parse(html)
}

// setCookies applies a raw "a=b; c=d" cookie string scoped to the site
// domain. An empty string is a no-op.
func setCookies(cookie string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		for _, pair := range strings.Split(cookie, ";") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			name, value, _ := strings.Cut(pair, "=")
			err := network.SetCookie(name, value).
				WithDomain(cookieDomain).
				WithPath("/").
				Do(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func scrollToEnd(ctx context.Context) error {
	t := scrollTracker{}
	for {
		err := chromedp.Run(ctx, chromedp.Evaluate(
			`window.scrollTo(0, document.documentElement.scrollHeight)`, nil,
		))
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(scrollSettleDelay):
		}

		var height int64
		err = chromedp.Run(ctx, chromedp.Evaluate(
			`document.documentElement.scrollHeight`, &height,
		))
		if err != nil {
			return err
		}

		if t.observe(height) == scrollDone {
			break
		}
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(scrollFinalDelay):
	}
	return nil
}
