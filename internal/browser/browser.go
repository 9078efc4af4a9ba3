// Package browser owns the Chromium session used to reach Naver pages.
// One session serves the whole run; callers borrow it per operation and
// must restore top-level scope before handing it back.
package browser

import (
	"context"
	"time"
)

// Config holds browser launch settings.
type Config struct {
	Headless     bool
	BinPath      string // optional explicit Chromium binary
	WindowWidth  int
	WindowHeight int
	UserAgent    string
	PageTimeout  time.Duration // navigation and element-wait bound
}

// Session is the scoped view of a live browser page. Element queries
// operate on the current scope: the top-level document by default, or a
// frame document after EnterFrame. ResetScope always restores top-level
// scope and never fails.
type Session interface {
	// Navigate loads a URL in the top-level document and waits for the
	// load event, bounded by the configured page timeout. Navigating
	// resets the query scope.
	Navigate(ctx context.Context, url string) error

	// PageHTML returns the rendered HTML of the current scope.
	PageHTML(ctx context.Context) (string, error)

	// EnterFrame waits up to wait for the iframe with the given element
	// id, then switches the query scope to its content document.
	EnterFrame(ctx context.Context, frameID string, wait time.Duration) error

	// ResetScope restores top-level scope. Safe to call repeatedly.
	ResetScope()

	// ElementTexts returns the visible text of every element matching
	// the CSS selector, in DOM order. No matches is a normal empty
	// result, not an error.
	ElementTexts(ctx context.Context, selector string) ([]string, error)

	// ElementHTML returns the inner markup of every element matching
	// the CSS selector, in DOM order.
	ElementHTML(ctx context.Context, selector string) ([]string, error)

	// TextNodes returns the visible text of every element that has a
	// direct non-empty text child, in DOM order.
	TextNodes(ctx context.Context) ([]string, error)

	// Close shuts the browser down. Idempotent.
	Close() error
}
