package preview

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"golf-atlas/utils"
)

// Result is what a rendered map page looked like.
type Result struct {
	URL        string
	Screenshot []byte
	Markers    int
	Clusters   int
	Status     string
}

// Capturer renders the map host page in headless Chrome.
type Capturer struct {
	logger    *utils.Logger
	retry     *utils.RetryConfig
	chromeBin string
	settle    time.Duration
	timeout   time.Duration
}

// New creates a Capturer. An empty chromeBin falls back to the usual install
// locations.
func New(logger *utils.Logger, chromeBin string, maxRetries int) *Capturer {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	return &Capturer{
		logger:    logger,
		chromeBin: chromeBin,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		settle:  3 * time.Second,
		timeout: 60 * time.Second,
	}
}

// ChromeBinary returns the browser binary in use, empty when none was found.
func (p *Capturer) ChromeBinary() string { return p.chromeBin }

// countScript reports the pins and clusters the page has drawn, plus the
// debug status box text.
const countScript = `(function() {
	var status = document.getElementById('status');
	return {
		markers: document.querySelectorAll('.leaflet-marker-icon .pin').length,
		clusters: document.querySelectorAll('.marker-cluster').length,
		status: status ? status.textContent : ''
	};
})()`

type pageCounts struct {
	Markers  int    `json:"markers"`
	Clusters int    `json:"clusters"`
	Status   string `json:"status"`
}

// Capture loads pageURL, waits for the map to draw and screenshots it.
func (p *Capturer) Capture(ctx context.Context, pageURL string) (*Result, error) {
	p.logger.Info("[preview] Using browser binary: %s", p.chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(1280, 800),
	)
	if p.chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(p.chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	res := &Result{URL: pageURL}
	err := p.retry.Do(ctx, "capture-preview", func() error {
		tabCtx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, p.timeout)
		defer cancelTimeout()

		var counts pageCounts
		var shot []byte
		err := chromedp.Run(tabCtx,
			chromedp.Navigate(pageURL),
			chromedp.WaitVisible(`#map`, chromedp.ByID),
			chromedp.Sleep(p.settle),
			chromedp.Evaluate(countScript, &counts),
			chromedp.FullScreenshot(&shot, 90),
		)
		if err != nil {
			return fmt.Errorf("chromedp run: %w", err)
		}

		res.Screenshot = shot
		res.Markers = counts.Markers
		res.Clusters = counts.Clusters
		res.Status = counts.Status
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("[preview] %s drew %d pins in %d clusters", pageURL, res.Markers, res.Clusters)
	return res, nil
}

// findChromeBinary looks for Chrome or Chromium in common locations.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
