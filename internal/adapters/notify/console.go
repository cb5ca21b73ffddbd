package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alejandrodnm/updown/internal/domain"
	"github.com/alejandrodnm/updown/internal/ports"
	"github.com/olekukonko/tablewriter"
)

// Console implements ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole creates a notifier writing to stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify prints one cycle's results in the configured mode.
func (c *Console) Notify(_ context.Context, report ports.CycleReport) error {
	if c.table {
		c.printFull(report)
	} else {
		c.printCompact(report)
	}
	return nil
}

// printCompact prints the whole cycle in one or two lines.
func (c *Console) printCompact(report ports.CycleReport) {
	now := time.Now().Format("15:04:05")

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] t-%.0fs | opps:%d trades:%d | pnl $%.2f",
		now, report.TimeLeft,
		len(report.Opportunities), len(report.Trades),
		report.Stats.TotalPnL)
	if report.Rotated {
		fmt.Fprintf(&sb, " | ROTATED -> %d", report.PeriodStart)
	}

	shown := 0
	for _, opp := range report.Opportunities {
		if shown >= 3 {
			break
		}
		fmt.Fprintf(&sb, "\n  >> %s", opp.Label())
		shown++
	}
	for _, t := range report.Trades {
		if t.Status == domain.TradeRejected {
			fmt.Fprintf(&sb, "\n  xx %s %s rejected: %s", t.Kind, t.Symbol, t.Reason)
		}
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull prints the opportunity and trade tables.
func (c *Console) printFull(report ports.CycleReport) {
	now := time.Now().Format("15:04:05")

	fmt.Fprintf(c.out, "\n[%s] period %d, %.0fs left — %d opportunities, %d trades\n",
		now, report.PeriodStart, report.TimeLeft,
		len(report.Opportunities), len(report.Trades))

	if len(report.Opportunities) > 0 {
		table := tablewriter.NewWriter(c.out)
		table.Header("#", "Kind", "Symbol", "Side", "Price", "Edge", "Detail")

		for i, opp := range report.Opportunities {
			table.Append(
				fmt.Sprintf("%d", i+1),
				string(opp.Kind),
				opp.Symbol,
				sideLabel(opp),
				priceLabel(opp),
				edgeLabel(opp),
				detailLabel(opp),
			)
		}
		table.Render()
	}

	if len(report.Trades) > 0 {
		table := tablewriter.NewWriter(c.out)
		table.Header("Kind", "Symbol", "Status", "Size$", "Shares", "Net PnL")

		for _, t := range report.Trades {
			status := string(t.Status)
			if t.Status == domain.TradeRejected {
				status = "rejected: " + t.Reason
			}
			table.Append(
				string(t.Kind),
				t.Symbol,
				status,
				fmt.Sprintf("$%.2f", t.SizeUSD),
				fmt.Sprintf("%.1f", t.Shares),
				fmt.Sprintf("$%.4f", t.NetPnL),
			)
		}
		table.Render()
	}

	c.printStatsLine(report.Stats)
}

func (c *Console) printStatsLine(stats domain.SessionStats) {
	fmt.Fprintf(c.out, "  session: %d opps, %d trades, pnl $%.4f",
		stats.TotalOpportunities, stats.TotalTrades, stats.TotalPnL)
	for _, k := range domain.Kinds() {
		if b, ok := stats.ByStrategy[k]; ok && b.Opportunities > 0 {
			fmt.Fprintf(c.out, " | %s %d/$%.2f", k, b.Trades, b.PnL)
		}
	}
	fmt.Fprintln(c.out)
}

// PrintSessionReport prints the final summary on shutdown.
func (c *Console) PrintSessionReport(stats domain.SessionStats, pnlSeries []domain.PnLPoint) {
	elapsed := time.Since(stats.StartedAt)

	fmt.Fprintf(c.out, "\n")
	fmt.Fprintf(c.out, "========================================================\n")
	fmt.Fprintf(c.out, "  SESSION REPORT (simulated fills, no real orders)\n")
	fmt.Fprintf(c.out, "  started %s, ran %s\n",
		stats.StartedAt.Format("2006-01-02 15:04:05"), elapsed.Round(time.Second))
	fmt.Fprintf(c.out, "========================================================\n\n")

	table := tablewriter.NewWriter(c.out)
	table.Header("Strategy", "Opportunities", "Trades", "PnL")
	for _, k := range domain.Kinds() {
		b := stats.ByStrategy[k]
		if b == nil {
			b = &domain.StrategyStats{}
		}
		table.Append(
			string(k),
			fmt.Sprintf("%d", b.Opportunities),
			fmt.Sprintf("%d", b.Trades),
			fmt.Sprintf("$%.4f", b.PnL),
		)
	}
	table.Append("total",
		fmt.Sprintf("%d", stats.TotalOpportunities),
		fmt.Sprintf("%d", stats.TotalTrades),
		fmt.Sprintf("$%.4f", stats.TotalPnL),
	)
	table.Render()

	fmt.Fprintf(c.out, "\n  Period transitions: %d\n", stats.PeriodTransitions)

	if len(pnlSeries) > 1 {
		first, last := pnlSeries[0], pnlSeries[len(pnlSeries)-1]
		fmt.Fprintf(c.out, "  PnL series: %d samples, %.4f -> %.4f over %s\n",
			len(pnlSeries), first.CumulativePnL, last.CumulativePnL,
			last.At.Sub(first.At).Round(time.Second))
	}

	if stats.TotalTrades == 0 {
		fmt.Fprintf(c.out, "\n  No trades executed this session.\n\n")
		return
	}
	avg := stats.TotalPnL / float64(stats.TotalTrades)
	fmt.Fprintf(c.out, "  Avg PnL/trade: $%.4f\n\n", avg)
}

// --- helpers ---

func sideLabel(opp domain.Opportunity) string {
	if opp.Kind == domain.KindArbitrage {
		return "YES+NO"
	}
	return string(opp.Side)
}

func priceLabel(opp domain.Opportunity) string {
	if opp.Kind == domain.KindArbitrage {
		return fmt.Sprintf("%.3f", opp.YesAsk+opp.NoAsk)
	}
	return fmt.Sprintf("%.3f", opp.Price)
}

func edgeLabel(opp domain.Opportunity) string {
	switch opp.Kind {
	case domain.KindArbitrage:
		return fmt.Sprintf("%.2f%%", opp.NetEdge*100)
	case domain.KindSnipe:
		return fmt.Sprintf("%.1fc", opp.Edge*100)
	case domain.KindMispriced:
		return fmt.Sprintf("-%.0f%%", opp.DiscountPct)
	}
	return "-"
}

func detailLabel(opp domain.Opportunity) string {
	switch opp.Kind {
	case domain.KindArbitrage:
		return fmt.Sprintf("YES %.3f / NO %.3f", opp.YesAsk, opp.NoAsk)
	case domain.KindSnipe:
		return fmt.Sprintf("%.0fs left", opp.TimeLeft)
	case domain.KindMispriced:
		return fmt.Sprintf("cluster %.3f, size %.0f", opp.ClusterPrice, opp.Size)
	}
	return domain.TruncateStr(opp.Question, 30)
}
