package review

import (
	"context"
	"time"
)

// fakeSession is a scriptable browser.Session. Results are keyed by
// selector; call counters let tests assert which tiers ran and that
// scope discipline held.
type fakeSession struct {
	texts     map[string][]string // ElementTexts results per selector
	markup    map[string][]string // ElementHTML results per selector
	textNodes []string

	navErr   error
	frameErr error

	navigateCalls   []string
	textsCalls      []string
	markupCalls     []string
	textNodesCalls  int
	enterFrameCalls int
	resetScopeCalls int
	closed          bool
}

func (f *fakeSession) Navigate(_ context.Context, url string) error {
	f.navigateCalls = append(f.navigateCalls, url)
	return f.navErr
}

func (f *fakeSession) PageHTML(_ context.Context) (string, error) { return "", nil }

func (f *fakeSession) EnterFrame(_ context.Context, _ string, _ time.Duration) error {
	f.enterFrameCalls++
	return f.frameErr
}

func (f *fakeSession) ResetScope() { f.resetScopeCalls++ }

func (f *fakeSession) ElementTexts(_ context.Context, selector string) ([]string, error) {
	f.textsCalls = append(f.textsCalls, selector)
	return f.texts[selector], nil
}

func (f *fakeSession) ElementHTML(_ context.Context, selector string) ([]string, error) {
	f.markupCalls = append(f.markupCalls, selector)
	return f.markup[selector], nil
}

func (f *fakeSession) TextNodes(_ context.Context) ([]string, error) {
	f.textNodesCalls++
	return f.textNodes, nil
}

func (f *fakeSession) Close() error {
	f.closed = true
	return nil
}
