package importer

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/gocolly/colly/v2"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Listing is one link found on a careers list page.
type Listing struct {
	URL      string
	Title    string
	Location string
}

// Posting is the content of a job detail page.
type Posting struct {
	URL         string
	Title       string
	Location    string
	Description string
}

type Fetcher interface {
	Listings(ctx context.Context, t Target) ([]Listing, error)
	Posting(ctx context.Context, t Target, link string) (Posting, error)
}

// WebFetcher crawls static pages with colly and renders headless targets
// with chromedp.
type WebFetcher struct {
	Delay          time.Duration
	HeadlessWait   time.Duration
	HeadlessBudget time.Duration
}

func NewWebFetcher() *WebFetcher {
	return &WebFetcher{
		Delay:          450 * time.Millisecond,
		HeadlessWait:   1500 * time.Millisecond,
		HeadlessBudget: 25 * time.Second,
	}
}

func (f *WebFetcher) collector(rawURL string) *colly.Collector {
	var c *colly.Collector
	if host := hostOf(rawURL); host != "" {
		c = colly.NewCollector(colly.AllowedDomains(host), colly.UserAgent(userAgent))
	} else {
		c = colly.NewCollector(colly.UserAgent(userAgent))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: f.Delay})
	return c
}

func (f *WebFetcher) Listings(ctx context.Context, t Target) ([]Listing, error) {
	if t.Headless {
		return f.headlessListings(ctx, t)
	}

	c := f.collector(t.ListURL)
	seen := map[string]struct{}{}
	out := make([]Listing, 0)

	c.OnHTML(t.LinkSelector, func(e *colly.HTMLElement) {
		link := normalizeURL(e.Request.AbsoluteURL(strings.TrimSpace(e.Attr("href"))))
		if link == "" {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}

		it := Listing{URL: link}
		if t.TitleSelector != "" {
			it.Title = strings.TrimSpace(e.DOM.Find(t.TitleSelector).Text())
		}
		if t.LocationSelector != "" {
			it.Location = strings.TrimSpace(e.DOM.Find(t.LocationSelector).Text())
		}
		out = append(out, it)
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(t.ListURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return out, nil
}

// headlessListings renders the list page and collects the href of every
// element matching the link selector.
func (f *WebFetcher) headlessListings(ctx context.Context, t Target) ([]Listing, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(userAgent),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, f.HeadlessBudget)
	defer reqCancel()

	var hrefs []string
	script := fmt.Sprintf(`Array.from(document.querySelectorAll(%q)).map(a => a.href).filter(h => !!h)`, t.LinkSelector)
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(t.ListURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(f.HeadlessWait),
		chromedp.Evaluate(script, &hrefs),
	)
	if err != nil {
		return nil, fmt.Errorf("headless %s: %w", t.ListURL, err)
	}

	base, _ := url.Parse(t.ListURL)
	seen := map[string]struct{}{}
	out := make([]Listing, 0, len(hrefs))
	for _, h := range hrefs {
		ref, err := url.Parse(strings.TrimSpace(h))
		if err != nil {
			continue
		}
		link := normalizeURL(base.ResolveReference(ref).String())
		if link == "" {
			continue
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		out = append(out, Listing{URL: link})
	}
	return out, nil
}

func (f *WebFetcher) Posting(ctx context.Context, t Target, link string) (Posting, error) {
	c := f.collector(link)
	out := Posting{URL: link}

	c.OnHTML(t.TitleSelector, func(e *colly.HTMLElement) {
		if out.Title == "" {
			out.Title = strings.TrimSpace(e.Text)
		}
	})
	if t.LocationSelector != "" {
		c.OnHTML(t.LocationSelector, func(e *colly.HTMLElement) {
			if out.Location == "" {
				out.Location = strings.TrimSpace(e.Text)
			}
		})
	}
	c.OnHTML(t.BodySelector, func(e *colly.HTMLElement) {
		if out.Description == "" {
			out.Description = collapseSpace(e.Text)
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return Posting{}, err
	}
	if err := c.Visit(link); err != nil {
		return Posting{}, err
	}
	c.Wait()
	if reqErr != nil {
		return Posting{}, reqErr
	}
	return out, nil
}

// normalizeURL drops fragments and rejects non-http links.
func normalizeURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

func hostOf(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
