package source_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alejandrodnm/tradedash/internal/adapters/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const journalSchema = `
CREATE TABLE trades (
    entry_time    TEXT NOT NULL,
    exit_time     TEXT NOT NULL,
    entry_price   REAL NOT NULL,
    exit_price    REAL NOT NULL,
    position_size REAL NOT NULL DEFAULT 0,
    pnl           REAL NOT NULL,
    pnl_pct       REAL NOT NULL,
    exit_reason   TEXT NOT NULL,
    equity_after  REAL NOT NULL
);
CREATE TABLE equity_curve (
    timestamp TEXT,
    equity    REAL NOT NULL
);
`

func makeJournal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backtest.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(journalSchema)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO trades VALUES
		('2024-03-01 10:00:00','2024-03-01 12:00:00',1.08123,1.08456,2,150.50,0.15,'take_profit',100150.50),
		('2024-03-02 09:30:00','2024-03-02 10:15:00',1.08400,1.08200,1,-75.25,-0.08,'stop_loss',100075.25)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO equity_curve VALUES
		('2024-03-01 10:00:00',100000),
		('2024-03-01 12:00:00',100150.50),
		('2024-03-02 10:15:00',100075.25)`)
	require.NoError(t, err)

	return path
}

func TestSQLite_Load_Journal(t *testing.T) {
	src := source.NewSQLite(makeJournal(t))

	res, err := src.Load(context.Background())
	require.NoError(t, err)
	require.True(t, res.Found)

	require.Len(t, res.Session.Trades, 2)
	assert.InDelta(t, 150.50, res.Session.Trades[0].PnL, 1e-9)
	assert.Equal(t, "stop_loss", res.Session.Trades[1].ExitReason)

	require.Len(t, res.Session.Equity, 3)
	assert.InDelta(t, 100150.50, res.Session.Equity[1].Equity, 1e-9)
	assert.False(t, res.Session.Equity[0].Timestamp.IsZero())
}

func TestSQLite_Load_FileMissing(t *testing.T) {
	src := source.NewSQLite(filepath.Join(t.TempDir(), "nope.db"))

	res, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestSQLite_Load_TableMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "half.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE trades (pnl REAL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	src := source.NewSQLite(path)
	res, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Found)
}
