package web_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/tradedash/internal/dashboard"
	"github.com/alejandrodnm/tradedash/internal/domain"
	"github.com/alejandrodnm/tradedash/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeServer(t *testing.T, result *dashboard.Result) (*httptest.Server, string, string) {
	t.Helper()
	outDir := t.TempDir()
	dataDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(outDir, "dashboard.html"),
		[]byte("<html><body>dash</body></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "backtest_trades.csv"),
		[]byte("pnl\n10\n"), 0o644))

	s := web.New(":0", outDir, dataDir, 100, 100, result)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, outDir, dataDir
}

func loadedResult() *dashboard.Result {
	trades := []domain.TradeRecord{
		{PnL: 10, EquityAfter: 100010},
		{PnL: -5, EquityAfter: 100005},
	}
	return &dashboard.Result{
		Session: domain.NewSession(trades, nil),
		Summary: domain.ComputeMetrics(trades),
	}
}

func TestServer_Index(t *testing.T) {
	ts, _, _ := makeServer(t, loadedResult())

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "dash")
}

func TestServer_DataCSVContentType(t *testing.T) {
	ts, _, _ := makeServer(t, loadedResult())

	resp, err := http.Get(ts.URL + "/data/backtest_trades.csv")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
}

func TestServer_DataRejectsTraversal(t *testing.T) {
	ts, _, _ := makeServer(t, loadedResult())

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/data/", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_SummaryJSON(t *testing.T) {
	ts, _, _ := makeServer(t, loadedResult())

	resp, err := http.Get(ts.URL + "/api/summary")
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload struct {
		Idle    bool   `json:"idle"`
		RunID   string `json:"run_id"`
		Summary struct {
			TotalPnL   float64 `json:"TotalPnL"`
			WinRatePct float64 `json:"WinRatePct"`
		} `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.False(t, payload.Idle)
	assert.NotEmpty(t, payload.RunID)
	assert.InDelta(t, 5.0, payload.Summary.TotalPnL, 1e-9)
	assert.InDelta(t, 50.0, payload.Summary.WinRatePct, 1e-9)
}

func TestServer_SummaryIdle(t *testing.T) {
	ts, _, _ := makeServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/summary")
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, true, payload["idle"])
}

func TestServer_Throttle(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "dashboard.html"), []byte("x"), 0o644))

	// burst de 1 y refill lentísimo: la segunda request inmediata cae
	s := web.New(":0", outDir, t.TempDir(), 0.001, 1, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp1, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp1.Body.Close()
	assert.Equal(t, http.StatusOK, resp1.StatusCode)

	resp2, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp2.StatusCode)
}
