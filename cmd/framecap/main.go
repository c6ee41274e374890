// Command framecap renders documentation mockups: it loads a page, wraps
// its screenshot in a styled browser-window frame, and writes the result
// as PNG. It can also serve a gallery of generated images over HTTP or
// expose composition as an MCP tool over stdio.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/playwright-community/playwright-go"

	"github.com/hazyhaar/framecap/drive"
	"github.com/hazyhaar/framecap/drive/pwdrive"
	"github.com/hazyhaar/framecap/drive/roddrive"
	"github.com/hazyhaar/framecap/gallery"
	"github.com/hazyhaar/framecap/mockup"
	"github.com/hazyhaar/framecap/pom"
)

func main() {
	var (
		url      = flag.String("url", "", "page URL to load")
		display  = flag.String("display", "", "address-bar text (defaults to -url)")
		out      = flag.String("out", "mockup.png", "output file path")
		format   = flag.String("format", "png", "inner capture format: png | jpeg")
		focus    = flag.String("focus", "", "CSS selector to highlight")
		themeAt  = flag.String("theme", "", "YAML theme file")
		fullPage = flag.Bool("full", false, "capture the full scrollable page")
		engine   = flag.String("engine", env("FRAMECAP_ENGINE", "rod"), "browser engine: rod | playwright")
		serveDir = flag.String("serve", "", "serve a gallery of this directory instead of composing")
		addr     = flag.String("addr", env("FRAMECAP_ADDR", ":8086"), "gallery listen address")
		mcpMode  = flag.Bool("mcp", false, "serve the compose tool over MCP stdio")
	)
	flag.Parse()

	logger := newLogger(env("LOG_LEVEL", "info"))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *serveDir != "" {
		if err := serveGallery(ctx, *serveDir, *addr, logger); err != nil {
			slog.Error("gallery", "error", err)
			os.Exit(1)
		}
		return
	}

	theme := mockup.DefaultTheme()
	if *themeAt != "" {
		var err error
		theme, err = mockup.LoadTheme(*themeAt)
		if err != nil {
			slog.Error("theme", "error", err)
			os.Exit(1)
		}
	}
	composer := mockup.NewComposer(theme, logger)

	factory, stop, err := pageFactory(ctx, *engine, logger)
	if err != nil {
		slog.Error("engine", "engine", *engine, "error", err)
		os.Exit(1)
	}
	defer stop()

	if *mcpMode {
		srv := mcp.NewServer(&mcp.Implementation{Name: "framecap", Version: "1.0.0"}, nil)
		mockup.RegisterMCP(srv, factory, composer)
		slog.Info("MCP stdio serving")
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			slog.Error("MCP", "error", err)
			os.Exit(1)
		}
		return
	}

	if *url == "" {
		fmt.Fprintln(os.Stderr, "usage: framecap -url https://example.com [-out mockup.png]")
		os.Exit(2)
	}
	if err := composeOne(ctx, factory, composer, *url, *display, *out, *format, *focus, *fullPage); err != nil {
		slog.Error("compose", "url", *url, "error", err)
		os.Exit(1)
	}
}

func composeOne(ctx context.Context, factory mockup.PageFactory, composer *mockup.Composer, url, display, out, format, focus string, fullPage bool) error {
	f, err := mockup.ParseFormat(format)
	if err != nil {
		return err
	}

	page, release, err := factory(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := release(); cErr != nil {
			slog.Warn("release page", "error", cErr)
		}
	}()

	target := pom.NewPage("framecap", url, page, slog.Default())
	if err := target.Navigate(ctx); err != nil {
		return err
	}

	if display == "" {
		display = url
	}
	req := mockup.Request{
		Page:       page,
		DisplayURL: display,
		Format:     f,
		OutputPath: out,
		Shot:       drive.ScreenshotOptions{FullPage: fullPage},
	}
	if focus != "" {
		sel := drive.CSS(focus)
		req.Focus = &sel
	}

	img, err := composer.Compose(ctx, req)
	if err != nil {
		return err
	}
	slog.Info("composed", "out", out, "bytes", len(img))
	return nil
}

// pageFactory builds the engine-specific page source. The returned stop
// func tears the whole engine down.
func pageFactory(ctx context.Context, engine string, logger *slog.Logger) (mockup.PageFactory, func(), error) {
	switch engine {
	case "rod":
		l := roddrive.NewLauncher(roddrive.Config{
			RemoteURL: env("CHROME_REMOTE", ""),
			Stealth:   env("FRAMECAP_STEALTH", "") == "1",
			Logger:    logger,
		})
		if err := l.Start(ctx); err != nil {
			return nil, nil, err
		}
		stop := func() {
			if err := l.Stop(); err != nil {
				logger.Warn("stop browser", "error", err)
			}
		}
		return l.NewPage, stop, nil

	case "playwright":
		pw, err := playwright.Run()
		if err != nil {
			return nil, nil, fmt.Errorf("start playwright: %w", err)
		}
		browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(env("HEADLESS", "true") != "false"),
		})
		if err != nil {
			pw.Stop()
			return nil, nil, fmt.Errorf("launch chromium: %w", err)
		}
		factory := func(context.Context) (drive.Page, func() error, error) {
			bc, err := browser.NewContext()
			if err != nil {
				return nil, nil, fmt.Errorf("new context: %w", err)
			}
			p, err := bc.NewPage()
			if err != nil {
				bc.Close()
				return nil, nil, fmt.Errorf("new page: %w", err)
			}
			return pwdrive.Adapt(p), func() error { return bc.Close() }, nil
		}
		stop := func() {
			if err := browser.Close(); err != nil {
				logger.Warn("close browser", "error", err)
			}
			if err := pw.Stop(); err != nil {
				logger.Warn("stop playwright", "error", err)
			}
		}
		return factory, stop, nil

	default:
		return nil, nil, fmt.Errorf("unknown engine %q (want rod or playwright)", engine)
	}
}

func serveGallery(ctx context.Context, dir, addr string, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: gallery.New(dir, logger).Handler(),
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	slog.Info("gallery serving", "addr", addr, "dir", dir)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
