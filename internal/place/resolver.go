// Package place resolves destination names to Naver place review pages
// through the shared browser session.
package place

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/daytrip-labs/travel-cli/internal/browser"
	"github.com/daytrip-labs/travel-cli/internal/model"
)

// linkPatterns are tried most-specific first; the first pattern with a
// usable link wins and later patterns are never consulted.
var linkPatterns = []string{
	"a[href*='place.naver.com']",
	"a[href*='/place/']",
	".place_bluelink a",
}

var placePathRe = regexp.MustCompile(`placePath=[^&]*`)

// Config holds search settings.
type Config struct {
	BaseURL     string        // Naver search endpoint
	SettleDelay time.Duration // wait after navigation for client-side rendering
}

// Resolver turns "region destination" queries into place review URLs.
type Resolver struct {
	cfg Config
}

// NewResolver creates a Resolver with the given search settings.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve searches Naver for the destination and returns a reference to
// its place detail page, rewritten to the review sub-view. A zero
// reference with nil error means no place page was found, which is a
// normal outcome for obscure destinations.
func (r *Resolver) Resolve(ctx context.Context, sess browser.Session, destination, region string) (model.PlaceReference, error) {
	query := region + " " + destination

	searchURL, err := r.searchURL(query)
	if err != nil {
		return model.PlaceReference{}, err
	}

	zap.L().Debug("searching place",
		zap.String("query", query),
		zap.String("url", searchURL),
	)

	if err := sess.Navigate(ctx, searchURL); err != nil {
		return model.PlaceReference{}, eris.Wrap(err, "place: navigate search")
	}

	// The result list renders client-side; snapshotting right after the
	// load event sees an empty shell.
	if err := settle(ctx, r.cfg.SettleDelay); err != nil {
		return model.PlaceReference{}, err
	}

	html, err := sess.PageHTML(ctx)
	if err != nil {
		return model.PlaceReference{}, eris.Wrap(err, "place: snapshot search page")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return model.PlaceReference{}, eris.Wrap(err, "place: parse search page")
	}

	for _, pattern := range linkPatterns {
		href, ok := doc.Find(pattern).First().Attr("href")
		if !ok || href == "" {
			continue
		}

		ref := model.PlaceReference{
			URL:           rewriteToReviewPath(href),
			HasReviewView: true,
		}
		zap.L().Debug("place link matched",
			zap.String("pattern", pattern),
			zap.String("url", ref.URL),
		)
		return ref, nil
	}

	zap.L().Debug("no place link found", zap.String("query", query))
	return model.PlaceReference{}, nil
}

func (r *Resolver) searchURL(query string) (string, error) {
	u, err := url.Parse(r.cfg.BaseURL)
	if err != nil {
		return "", eris.Wrap(err, "place: parse search base url")
	}

	q := u.Query()
	q.Set("query", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// rewriteToReviewPath forces the placePath query component to the review
// sub-view so the detail page opens on its reviews.
func rewriteToReviewPath(href string) string {
	if strings.Contains(href, "placePath=") {
		return placePathRe.ReplaceAllString(href, "placePath=/review")
	}
	return href + "&placePath=/review"
}

func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
