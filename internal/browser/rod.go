package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// rodSession implements Session on top of go-rod.
type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	scope    *rod.Page // nil means top-level page scope
	timeout  time.Duration

	closeOnce sync.Once
	closeErr  error
}

var _ Session = (*rodSession)(nil)

// Open launches Chromium and returns a connected Session. Launch or
// connect failure is fatal to the run; there is no degraded mode without
// a browser.
func Open(cfg Config) (Session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("window-size", fmt.Sprintf("%d,%d", cfg.WindowWidth, cfg.WindowHeight))
	if cfg.BinPath != "" {
		l = l.Bin(cfg.BinPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, eris.Wrap(err, "browser: launch")
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, eris.Wrap(err, "browser: connect")
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, eris.Wrap(err, "browser: create page")
	}

	if cfg.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent}); err != nil {
			zap.L().Warn("set user agent failed", zap.Error(err))
		}
	}

	zap.L().Info("browser session opened",
		zap.Bool("headless", cfg.Headless),
		zap.Int("window_width", cfg.WindowWidth),
		zap.Int("window_height", cfg.WindowHeight),
	)

	return &rodSession{
		launcher: l,
		browser:  b,
		page:     page,
		timeout:  cfg.PageTimeout,
	}, nil
}

func (s *rodSession) Navigate(ctx context.Context, url string) error {
	// Loading a new document always lands at top-level scope.
	s.ResetScope()

	err := rod.Try(func() {
		s.page.Context(ctx).Timeout(s.timeout).MustNavigate(url).MustWaitLoad()
	})
	if err != nil {
		return eris.Wrap(err, "browser: navigate")
	}
	return nil
}

func (s *rodSession) PageHTML(ctx context.Context) (string, error) {
	html, err := s.scopePage().Context(ctx).HTML()
	if err != nil {
		return "", eris.Wrap(err, "browser: page html")
	}
	return html, nil
}

func (s *rodSession) EnterFrame(ctx context.Context, frameID string, wait time.Duration) error {
	el, err := s.page.Context(ctx).Timeout(wait).Element("iframe#" + frameID)
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("browser: frame %s not found", frameID))
	}

	frame, err := el.Frame()
	if err != nil {
		return eris.Wrap(err, fmt.Sprintf("browser: enter frame %s", frameID))
	}

	s.scope = frame
	return nil
}

func (s *rodSession) ResetScope() {
	s.scope = nil
}

func (s *rodSession) ElementTexts(ctx context.Context, selector string) ([]string, error) {
	els, err := s.elements(ctx, selector)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(els))
	for _, el := range els {
		t, err := el.Text()
		if err != nil {
			zap.L().Debug("element text failed", zap.String("selector", selector), zap.Error(err))
			continue
		}
		texts = append(texts, t)
	}
	return texts, nil
}

func (s *rodSession) ElementHTML(ctx context.Context, selector string) ([]string, error) {
	els, err := s.elements(ctx, selector)
	if err != nil {
		return nil, err
	}

	markup := make([]string, 0, len(els))
	for _, el := range els {
		obj, err := el.Eval(`() => this.innerHTML`)
		if err != nil {
			zap.L().Debug("element markup failed", zap.String("selector", selector), zap.Error(err))
			continue
		}
		markup = append(markup, obj.Value.Str())
	}
	return markup, nil
}

func (s *rodSession) TextNodes(ctx context.Context) ([]string, error) {
	els, err := s.scopePage().Context(ctx).ElementsX("//*[text()]")
	if err != nil {
		return nil, eris.Wrap(err, "browser: query text nodes")
	}

	texts := make([]string, 0, len(els))
	for _, el := range els {
		t, err := el.Text()
		if err != nil {
			continue
		}
		texts = append(texts, t)
	}
	return texts, nil
}

func (s *rodSession) Close() error {
	s.closeOnce.Do(func() {
		if err := s.browser.Close(); err != nil {
			s.closeErr = eris.Wrap(err, "browser: close")
		}
		s.launcher.Cleanup()
		zap.L().Info("browser session closed")
	})
	return s.closeErr
}

// scopePage returns the page for the current query scope.
func (s *rodSession) scopePage() *rod.Page {
	if s.scope != nil {
		return s.scope
	}
	return s.page
}

// elements waits for the first match up to the page timeout, then
// collects every match. Pages here render review content client-side, so
// an immediate query would race the renderer. A wait timeout is a normal
// empty result.
func (s *rodSession) elements(ctx context.Context, selector string) (rod.Elements, error) {
	scope := s.scopePage().Context(ctx)

	if _, err := scope.Timeout(s.timeout).Element(selector); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}

	els, err := scope.Elements(selector)
	if err != nil {
		return nil, eris.Wrap(err, "browser: query elements")
	}
	return els, nil
}
