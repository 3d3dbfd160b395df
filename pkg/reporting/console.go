package reporting

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ConsoleReporter renders a risk report as terminal tables.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a console reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Write renders the report.
func (r *ConsoleReporter) Write(report *Report) error {
	r.writeMetricsTable(report)
	r.writeSizingTable(report)
	return nil
}

func (r *ConsoleReporter) writeMetricsTable(report *Report) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(fmt.Sprintf("RISK METRICS — %s", report.Symbol))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Volatility", fmt.Sprintf("%.4f", report.Metrics.Volatility)},
		{"VaR 95%", fmt.Sprintf("%.4f", report.Metrics.VaR95)},
		{"VaR 99%", fmt.Sprintf("%.4f", report.Metrics.VaR99)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", report.Metrics.MaxDrawdown*100)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", report.Metrics.SharpeRatio)},
		{"Sortino Ratio", fmt.Sprintf("%.2f", report.Metrics.SortinoRatio)},
		{"Risk Level", report.Metrics.Level.String()},
		{"Market Regime", report.Regime},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 16, Align: text.AlignLeft},
		{Number: 2, WidthMin: 14, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

func (r *ConsoleReporter) writeSizingTable(report *Report) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("POSITION SIZING")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Account Balance", fmt.Sprintf("$%.2f", report.AccountBalance)},
		{"Entry Price", fmt.Sprintf("$%.4f", report.EntryPrice)},
		{"Stop Loss", fmt.Sprintf("$%.4f", report.StopLoss)},
		{"Stop Distance", fmt.Sprintf("%.2f%%", report.Sizing.StopLossDistancePct)},
		{"Position Size", fmt.Sprintf("$%.2f", report.Sizing.PositionSizeUSD)},
		{"Position (base)", fmt.Sprintf("%.6f", report.Sizing.PositionSizeBase)},
		{"Risk Amount", fmt.Sprintf("$%.2f (%.2f%%)", report.Sizing.RiskAmount, report.Sizing.RiskPercentage)},
		{"Leverage", fmt.Sprintf("%.2fx", report.Sizing.Leverage)},
		{"Vol Adjustment", fmt.Sprintf("%.2f", report.Sizing.VolatilityAdjustment)},
		{"Regime Multiplier", fmt.Sprintf("%.2f", report.Sizing.RegimeMultiplier)},
		{"Kelly Fraction", fmt.Sprintf("%.4f", report.Kelly)},
	})

	if report.Validation != nil {
		verdict := "VALID"
		if !report.Validation.Valid {
			verdict = fmt.Sprintf("REJECTED (%s)", report.Validation.Reason)
		}
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"R:R Ratio", fmt.Sprintf("%.2f (min %.2f)", report.Validation.RiskRewardRatio, report.Validation.MinRequired)},
			{"Setup", verdict},
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 18, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintln(r.out)
}
