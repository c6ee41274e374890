package mockup

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/framecap/drive"
)

// PageFactory opens a fresh page for one MCP tool call. The returned
// release func closes it; it is always called before the tool returns.
type PageFactory func(ctx context.Context) (drive.Page, func() error, error)

type composeArgs struct {
	// URL is loaded in a fresh page; Out receives the framed PNG.
	URL        string `json:"url"`
	DisplayURL string `json:"display_url,omitempty"`
	Format     string `json:"format,omitempty"`
	Out        string `json:"out"`
	FullPage   bool   `json:"full_page,omitempty"`
	Focus      string `json:"focus,omitempty"`
}

type composeResult struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// RegisterMCP registers the framecap_compose tool on an MCP server. Each
// call opens its own page via the factory, so calls are independent.
func RegisterMCP(srv *mcp.Server, pages PageFactory, c *Composer) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "framecap_compose",
		Description: "Render a page and wrap its screenshot in a styled browser-window frame, written as PNG.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args composeArgs) (*mcp.CallToolResult, composeResult, error) {
		if args.URL == "" {
			return nil, composeResult{}, fmt.Errorf("url is required")
		}
		if args.Out == "" {
			return nil, composeResult{}, fmt.Errorf("out is required")
		}
		format, err := ParseFormat(args.Format)
		if err != nil {
			return nil, composeResult{}, err
		}

		page, release, err := pages(ctx)
		if err != nil {
			return nil, composeResult{}, fmt.Errorf("open page: %w", err)
		}
		defer func() {
			if cErr := release(); cErr != nil {
				c.log.Warn("mockup: release tool page", "error", cErr)
			}
		}()

		if err := page.Navigate(ctx, args.URL); err != nil {
			return nil, composeResult{}, fmt.Errorf("navigate %s: %w", args.URL, err)
		}

		display := args.DisplayURL
		if display == "" {
			display = args.URL
		}
		req := Request{
			Page:       page,
			DisplayURL: display,
			Format:     format,
			OutputPath: args.Out,
			Shot:       drive.ScreenshotOptions{FullPage: args.FullPage},
		}
		if args.Focus != "" {
			sel := drive.CSS(args.Focus)
			req.Focus = &sel
		}

		img, err := c.Compose(ctx, req)
		if err != nil {
			return nil, composeResult{}, err
		}
		return nil, composeResult{Path: args.Out, Bytes: len(img)}, nil
	})
}
