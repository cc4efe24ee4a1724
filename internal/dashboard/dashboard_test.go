package dashboard_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alejandrodnm/tradedash/internal/dashboard"
	"github.com/alejandrodnm/tradedash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	res domain.LoadResult
	err error
}

func (f *fakeSource) Load(context.Context) (domain.LoadResult, error) { return f.res, f.err }

type spyRenderer struct {
	calls int
	sum   domain.Summary
	err   error
}

func (r *spyRenderer) Render(_ context.Context, _ *domain.Session, sum domain.Summary) error {
	r.calls++
	r.sum = sum
	return r.err
}

func TestDashboard_Run_NotFoundIsIdle(t *testing.T) {
	r := &spyRenderer{}
	d := dashboard.New(&fakeSource{}, r)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 0, r.calls, "idle: no renderer should run")
}

func TestDashboard_Run_ComputesAndRenders(t *testing.T) {
	session := domain.NewSession([]domain.TradeRecord{
		{PnL: 10, EquityAfter: 100010},
		{PnL: -5, EquityAfter: 100005},
	}, nil)
	r1, r2 := &spyRenderer{}, &spyRenderer{}
	d := dashboard.New(&fakeSource{res: domain.LoadResult{Found: true, Session: session}}, r1, r2)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 1, r1.calls)
	assert.Equal(t, 1, r2.calls)
	assert.InDelta(t, 5.0, r1.sum.TotalPnL, 1e-9)
	assert.Equal(t, res.Summary, r1.sum)
}

func TestDashboard_Run_RendererFailureDoesNotStopOthers(t *testing.T) {
	session := domain.NewSession([]domain.TradeRecord{{PnL: 10, EquityAfter: 100010}}, nil)
	bad := &spyRenderer{err: errors.New("disk full")}
	good := &spyRenderer{}
	d := dashboard.New(&fakeSource{res: domain.LoadResult{Found: true, Session: session}}, bad, good)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, good.calls)
}

func TestDashboard_Run_SourceError(t *testing.T) {
	d := dashboard.New(&fakeSource{err: errors.New("corrupt row")})

	_, err := d.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt row")
}

func TestDashboard_Run_ZeroTradesStillRenders(t *testing.T) {
	session := domain.NewSession(nil, nil)
	r := &spyRenderer{}
	d := dashboard.New(&fakeSource{res: domain.LoadResult{Found: true, Session: session}}, r)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, r.calls)
	assert.True(t, r.sum.Empty)
}
