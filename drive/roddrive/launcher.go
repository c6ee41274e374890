package roddrive

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/hazyhaar/framecap/drive"
)

// Config configures the browser launcher.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher.
	RemoteURL string

	// Stealth creates hardened pages that pass most automation checks.
	Stealth bool

	// Headful runs Chrome with a visible window for debugging.
	Headful bool

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Launcher owns a Chrome instance and hands out pages bound to it.
type Launcher struct {
	cfg     Config
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// NewLauncher creates a Launcher. Call Start before NewPage.
func NewLauncher(cfg Config) *Launcher {
	cfg.defaults()
	return &Launcher{cfg: cfg}
}

// Start launches Chrome or connects to a remote instance.
func (l *Launcher) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.browser != nil {
		return nil
	}

	controlURL := l.cfg.RemoteURL
	if controlURL == "" {
		lnch := launcher.New().Headless(!l.cfg.Headful)
		u, err := lnch.Launch()
		if err != nil {
			return fmt.Errorf("roddrive: launch chrome: %w", err)
		}
		l.lnch = lnch
		controlURL = u
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.cleanupLocked()
		return fmt.Errorf("roddrive: connect %s: %w", controlURL, err)
	}
	l.browser = b
	l.cfg.Logger.Info("roddrive: browser ready", "remote", l.cfg.RemoteURL != "", "stealth", l.cfg.Stealth)
	return nil
}

// NewPage opens a fresh page and returns it with a release func that
// closes it. The release func is safe to call exactly once.
func (l *Launcher) NewPage(ctx context.Context) (drive.Page, func() error, error) {
	l.mu.Lock()
	b := l.browser
	l.mu.Unlock()
	if b == nil {
		return nil, nil, fmt.Errorf("roddrive: launcher not started")
	}

	var p *rod.Page
	var err error
	if l.cfg.Stealth {
		p, err = stealth.Page(b)
	} else {
		p, err = b.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("roddrive: new page: %w", err)
	}
	p = p.Context(ctx)
	return Adapt(p), p.Close, nil
}

// Stop closes the browser and the launched Chrome process.
func (l *Launcher) Stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var err error
	if l.browser != nil {
		err = l.browser.Close()
		l.browser = nil
	}
	l.cleanupLocked()
	return err
}

func (l *Launcher) cleanupLocked() {
	if l.lnch != nil {
		l.lnch.Cleanup()
		l.lnch = nil
	}
}
