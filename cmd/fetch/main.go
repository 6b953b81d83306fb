package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"cryptopanel-api/internal/cli"
	"cryptopanel-api/internal/config"
	"cryptopanel-api/internal/panel"
	"cryptopanel-api/internal/svc"
	"cryptopanel-api/pkg/market"
)

var (
	configFile = flag.String("f", "etc/cryptopanel.yaml", "the config file")
	coin       = flag.String("coin", "Bitcoin", "catalog display name")
	kind       = flag.String("kind", "snapshot", "snapshot | history | candles | range | assets")
	period     = flag.String("period", "30d", "period selector for history and candles")
	start      = flag.String("start", "", "range start date (YYYY-MM-DD)")
	end        = flag.String("end", "", "range end date (YYYY-MM-DD)")
	ma         = flag.Int("ma", 0, "moving average window, 0 disables")
	asJSON     = flag.Bool("json", false, "print JSON instead of a table")
	timeout    = flag.Duration("timeout", 30*time.Second, "overall request timeout")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime)

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("[fetch] load config: %v", err)
	}
	for _, line := range cli.ConfigSummaryLines(cfg) {
		log.Printf("[fetch] %s", line)
	}

	svcCtx, err := svc.New(*cfg)
	if err != nil {
		log.Fatalf("[fetch] %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, svcCtx.Panel); err != nil {
		log.Fatalf("[fetch] %s %s: %v", *kind, *coin, err)
	}
}

func run(ctx context.Context, p *panel.Service) error {
	switch *kind {
	case "assets":
		return printJSON(p.Assets())
	case "snapshot":
		snap, err := p.GetSnapshot(ctx, *coin)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(snap)
		}
		return printSnapshot(snap)
	case "history", "candles", "range":
		if *ma != 0 {
			if err := market.ValidateWindow(*ma); err != nil {
				return err
			}
		}
		table, err := fetchTable(ctx, p)
		if err != nil {
			return err
		}
		if *ma != 0 {
			if table, err = p.WithMovingAverage(table, *ma); err != nil {
				return err
			}
		}
		if *asJSON {
			return printJSON(table)
		}
		return printTable(table)
	default:
		return fmt.Errorf("unknown kind %q", *kind)
	}
}

func fetchTable(ctx context.Context, p *panel.Service) (*market.Table, error) {
	switch *kind {
	case "history":
		return p.GetHistoricalSeries(ctx, *coin, market.PeriodSelector(*period))
	case "candles":
		return p.GetCandles(ctx, *coin, market.PeriodSelector(*period))
	default:
		from, err := time.Parse(time.DateOnly, *start)
		if err != nil {
			return nil, fmt.Errorf("invalid -start: %w", err)
		}
		to, err := time.Parse(time.DateOnly, *end)
		if err != nil {
			return nil, fmt.Errorf("invalid -end: %w", err)
		}
		return p.GetRangeSeries(ctx, *coin, from, to)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSnapshot(snap *market.SnapshotRecord) error {
	d := snap.Display()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Price\t%s\t(%s)\n", d.Price, d.Change24h)
	fmt.Fprintf(w, "Market cap\t%s\n", d.MarketCap)
	fmt.Fprintf(w, "24h volume\t%s\n", d.Volume24h)
	fmt.Fprintf(w, "24h high / low\t%s / %s\n", d.High24h, d.Low24h)
	fmt.Fprintf(w, "Circulating supply\t%s\n", d.CirculatingSupply)
	fmt.Fprintf(w, "Total supply\t%s\n", d.TotalSupply)
	return w.Flush()
}

func printTable(table *market.Table) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "date\topen\thigh\tlow\tclose\tvolume\tma")
	for _, row := range table.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			row.Timestamp.Format(time.DateOnly),
			optional(row.Open), optional(row.High), optional(row.Low),
			row.Close.StringFixed(2),
			optional(row.Volume), optional(row.MovingAverage))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Printf("[fetch] %s %s: %d rows (%s)", table.Asset.DisplayName, *kind, table.Len(), table.Shape)
	return nil
}

func optional(v *decimal.Decimal) string {
	if v == nil {
		return "-"
	}
	return v.StringFixed(2)
}
