package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrRenderFailed wraps every failure to produce a PDF.
var ErrRenderFailed = errors.New("resume rendering failed")

const DefaultRenderTimeout = 60 * time.Second

// Renderer prints a local HTML file to a local PDF file.
type Renderer interface {
	RenderFile(ctx context.Context, htmlPath, pdfPath string) error
}

// PDFRenderer drives headless Chrome through chromedp.
type PDFRenderer struct {
	ChromePath string
	Timeout    time.Duration
}

func NewPDFRenderer(chromePath string, timeout time.Duration) *PDFRenderer {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &PDFRenderer{ChromePath: chromePath, Timeout: timeout}
}

// RenderFile prints htmlPath to pdfPath on US Letter paper with 0.5in
// top/bottom and 0.75in left/right margins.
func (r *PDFRenderer) RenderFile(ctx context.Context, htmlPath, pdfPath string) error {
	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: resolve html path: %v", ErrRenderFailed, err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.Timeout)
	defer cancelRun()

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(absHTML)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(0.5).
				WithMarginBottom(0.5).
				WithMarginLeft(0.75).
				WithMarginRight(0.75).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: chrome: %v", ErrRenderFailed, err)
	}
	if len(pdfBuf) == 0 {
		return fmt.Errorf("%w: empty pdf", ErrRenderFailed)
	}
	if err := os.WriteFile(pdfPath, pdfBuf, 0o644); err != nil {
		return fmt.Errorf("%w: write pdf: %v", ErrRenderFailed, err)
	}
	return nil
}

// WriteAndRender writes html to dir/stem.html and renders dir/stem.pdf.
// It returns both paths.
func WriteAndRender(ctx context.Context, r Renderer, dir, stem, html string) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("%w: output dir: %v", ErrRenderFailed, err)
	}
	htmlPath := filepath.Join(dir, stem+".html")
	pdfPath := filepath.Join(dir, stem+".pdf")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return "", "", fmt.Errorf("%w: write html: %v", ErrRenderFailed, err)
	}
	if err := r.RenderFile(ctx, htmlPath, pdfPath); err != nil {
		if errors.Is(err, ErrRenderFailed) {
			return "", "", err
		}
		return "", "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return htmlPath, pdfPath, nil
}
