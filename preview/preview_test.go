package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golf-atlas/utils"
)

func TestFindChromeBinaryPrefersEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	if got := findChromeBinary(); got != "/opt/custom/chrome" {
		t.Errorf("findChromeBinary() = %q; want /opt/custom/chrome", got)
	}
}

func TestNewUsesExplicitBinary(t *testing.T) {
	p := New(utils.NewDiscardLogger(), "/usr/local/bin/chromium", 2)
	if p.ChromeBinary() != "/usr/local/bin/chromium" {
		t.Errorf("ChromeBinary() = %q", p.ChromeBinary())
	}
}

func TestCaptureCountsPins(t *testing.T) {
	bin := findChromeBinary()
	if bin == "" {
		t.Skip("no Chrome or Chromium binary available")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<div id="map" style="width:400px;height:300px">
				<div class="leaflet-marker-icon"><div class="pin top100"></div></div>
				<div class="leaflet-marker-icon"><div class="pin"></div></div>
				<div class="marker-cluster">12</div>
			</div>
			<div id="status">Loaded 14 • Showing 14</div>
		</body></html>`))
	}))
	defer srv.Close()

	p := New(utils.NewDiscardLogger(), bin, 1)
	p.settle = 100 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	res, err := p.Capture(ctx, srv.URL)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.Markers != 2 || res.Clusters != 1 {
		t.Errorf("counts = %d pins, %d clusters; want 2, 1", res.Markers, res.Clusters)
	}
	if res.Status != "Loaded 14 • Showing 14" {
		t.Errorf("status = %q", res.Status)
	}
	if len(res.Screenshot) == 0 {
		t.Error("expected a screenshot")
	}
}
