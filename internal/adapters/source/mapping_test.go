package source

import (
	"testing"

	"github.com/alejandrodnm/tradedash/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tradeRow() tabular.Row {
	return tabular.Row{
		"entry_time":   "2024-03-01 10:00:00",
		"exit_time":    "2024-03-01 12:00:00",
		"entry_price":  "1.08123",
		"exit_price":   "1.08456",
		"pnl":          "150.50",
		"pnl_pct":      "0.15",
		"exit_reason":  "take_profit",
		"equity_after": "100150.50",
	}
}

func TestMapTrade_Basic(t *testing.T) {
	tr, err := mapTrade(tradeRow())
	require.NoError(t, err)

	assert.InDelta(t, 150.50, tr.PnL, 1e-9)
	assert.Equal(t, "take_profit", tr.ExitReason)
	assert.InDelta(t, 2.0, tr.ExitTime.Sub(tr.EntryTime).Hours(), 1e-9)
}

func TestMapTrade_MissingRequiredField(t *testing.T) {
	row := tradeRow()
	delete(row, "pnl")

	_, err := mapTrade(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pnl"`)
}

func TestMapTrade_ExitBeforeEntry(t *testing.T) {
	row := tradeRow()
	row["exit_time"] = "2024-02-01 10:00:00"

	_, err := mapTrade(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before entry_time")
}

func TestMapTrade_RFC3339Timestamps(t *testing.T) {
	row := tradeRow()
	row["entry_time"] = "2024-03-01T10:00:00Z"
	row["exit_time"] = "2024-03-01T12:00:00Z"

	tr, err := mapTrade(row)
	require.NoError(t, err)
	assert.Equal(t, 2024, tr.EntryTime.Year())
}

func TestMapTrade_OptionalPositionSize(t *testing.T) {
	tr, err := mapTrade(tradeRow())
	require.NoError(t, err)
	assert.Equal(t, 0.0, tr.PositionSize)

	row := tradeRow()
	row["position_size"] = "3"
	tr, err = mapTrade(row)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, tr.PositionSize, 1e-9)
}

func TestMapEquity_IgnoresBadTimestamp(t *testing.T) {
	tbl := tabular.Table{
		Headers: []string{"timestamp", "equity"},
		Rows: []tabular.Row{
			{"timestamp": "???", "equity": "100000"},
		},
	}

	points, err := mapEquity(tbl)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Timestamp.IsZero())
	assert.InDelta(t, 100000.0, points[0].Equity, 1e-9)
}

func TestMapEquity_MissingEquityColumn(t *testing.T) {
	tbl := tabular.Table{
		Headers: []string{"timestamp"},
		Rows:    []tabular.Row{{"timestamp": "2024-03-01 10:00:00"}},
	}

	_, err := mapEquity(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"equity"`)
}
