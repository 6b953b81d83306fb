package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopanel-api/internal/panel"
	"cryptopanel-api/internal/svc"
	"cryptopanel-api/internal/types"
	"cryptopanel-api/pkg/market"
	"cryptopanel-api/pkg/market/exchanges/coingecko"
)

type upstream struct {
	calls  int32
	status int
}

func newTestContext(t *testing.T, up *upstream) *svc.ServiceContext {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&up.calls, 1)
		if up.status != 0 {
			w.WriteHeader(up.status)
			return
		}
		switch r.URL.Path {
		case "/coins/markets":
			_, _ = w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","current_price":50000,"price_change_percentage_24h":2.5,"market_cap":980000000000,"total_volume":32100000000,"circulating_supply":19500000}]`))
		case "/coins/bitcoin/market_chart", "/coins/bitcoin/market_chart/range":
			_, _ = w.Write([]byte(`{"prices":[[1704067200000,42000],[1704153600000,43000],[1704240000000,41500]],"total_volumes":[[1704067200000,1],[1704153600000,2],[1704240000000,3]]}`))
		case "/coins/bitcoin/ohlc":
			_, _ = w.Write([]byte(`[[1704067200000,42000,43100,41800,43000]]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	provider := coingecko.NewProvider(coingecko.WithClientOptions(coingecko.WithBaseURL(server.URL)))
	catalog := market.MustNewCatalog(market.DefaultAssets())
	return &svc.ServiceContext{
		Catalog:       catalog,
		DefaultMarket: provider,
		Panel:         panel.New(catalog, provider),
	}
}

func serve(t *testing.T, h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestAssetsHandler(t *testing.T) {
	ctx := newTestContext(t, &upstream{})
	rec := serve(t, AssetsHandler(ctx), "/api/assets")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.AssetsResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Assets, 7)
	require.Equal(t, "the-open-network", resp.Assets[3].ProviderID)
	require.Equal(t, []string{"30d", "90d", "365d", "all"}, resp.Periods)
}

func TestSnapshotHandler(t *testing.T) {
	up := &upstream{}
	ctx := newTestContext(t, up)

	rec := serve(t, SnapshotHandler(ctx), "/api/snapshot?coin=Bitcoin")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp types.SnapshotResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "$50,000.00", resp.Display.Price)
	assert.Equal(t, "2.50%", resp.Display.Change24h)
	assert.Equal(t, "N/A", resp.Display.TotalSupply)

	rec = serve(t, SnapshotHandler(ctx), "/api/snapshot?coin=Bitcoin")
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, atomic.LoadInt32(&up.calls))
}

func TestHistoryHandler(t *testing.T) {
	ctx := newTestContext(t, &upstream{})
	rec := serve(t, HistoryHandler(ctx), "/api/history?coin=Bitcoin&period=30d")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.SeriesResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, market.ShapeSyntheticOHLC, resp.Table.Shape)
	require.Len(t, resp.Table.Rows, 2)
	require.Equal(t, "42000", resp.Table.Rows[0].Open.String())
}

func TestCandlesHandler(t *testing.T) {
	ctx := newTestContext(t, &upstream{})
	rec := serve(t, CandlesHandler(ctx), "/api/candles?coin=Bitcoin&period=90d")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.SeriesResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, market.ShapeOHLC, resp.Table.Shape)
	require.Len(t, resp.Table.Rows, 1)
}

func TestRangeHandler(t *testing.T) {
	ctx := newTestContext(t, &upstream{})
	rec := serve(t, RangeHandler(ctx), "/api/range?coin=Bitcoin&start=2024-01-01&end=2024-01-03")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.SeriesResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, market.ShapeLine, resp.Table.Shape)
	require.Len(t, resp.Table.Rows, 3)
	require.Nil(t, resp.Table.Rows[0].Open)
}

func TestHandlersRejectBadInput(t *testing.T) {
	up := &upstream{}
	ctx := newTestContext(t, up)

	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  string
	}{
		{name: "missing coin", handler: SnapshotHandler(ctx), target: "/api/snapshot"},
		{name: "unknown coin", handler: SnapshotHandler(ctx), target: "/api/snapshot?coin=Dogecoin"},
		{name: "bad period", handler: HistoryHandler(ctx), target: "/api/history?coin=Bitcoin&period=14d"},
		{name: "ma too small", handler: HistoryHandler(ctx), target: "/api/history?coin=Bitcoin&period=30d&ma=4"},
		{name: "ma too large", handler: CandlesHandler(ctx), target: "/api/candles?coin=Bitcoin&period=30d&ma=500"},
		{name: "equal dates", handler: RangeHandler(ctx), target: "/api/range?coin=Bitcoin&start=2024-01-01&end=2024-01-01"},
		{name: "reversed dates", handler: RangeHandler(ctx), target: "/api/range?coin=Bitcoin&start=2024-02-01&end=2024-01-01"},
		{name: "bad date", handler: RangeHandler(ctx), target: "/api/range?coin=Bitcoin&start=01/01/2024&end=2024-01-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, tt.handler, tt.target)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	require.Zero(t, atomic.LoadInt32(&up.calls), "validation must precede any upstream call")
}

func TestHandlersUpstreamFailure(t *testing.T) {
	ctx := newTestContext(t, &upstream{status: http.StatusTooManyRequests})

	rec := serve(t, HistoryHandler(ctx), "/api/history?coin=Bitcoin&period=30d")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp types.ErrorResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, unavailableMessage, resp.Message)
}
