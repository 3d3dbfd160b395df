package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExcelReporter writes a risk report as an Excel workbook with one
// sheet for metrics and one for the sizing decision.
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteFile writes the report workbook to path, creating directories as
// needed.
func (r *ExcelReporter) WriteFile(report *Report, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx, err := r.Build(report)
	if err != nil {
		return err
	}
	defer fx.Close()

	return fx.SaveAs(path)
}

// Build assembles the workbook in memory.
func (r *ExcelReporter) Build(report *Report) (*excelize.File, error) {
	fx := excelize.NewFile()

	const metricsSheet = "Risk Metrics"
	const sizingSheet = "Position Sizing"

	fx.SetSheetName(fx.GetSheetName(0), metricsSheet)
	if _, err := fx.NewSheet(sizingSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E79"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	metricsRows := [][]interface{}{
		{"Metric", "Value"},
		{"Symbol", report.Symbol},
		{"Generated", report.Generated.Format("2006-01-02 15:04:05")},
		{"Volatility", report.Metrics.Volatility},
		{"VaR 95%", report.Metrics.VaR95},
		{"VaR 99%", report.Metrics.VaR99},
		{"Max Drawdown", report.Metrics.MaxDrawdown},
		{"Sharpe Ratio", report.Metrics.SharpeRatio},
		{"Sortino Ratio", report.Metrics.SortinoRatio},
		{"Risk Level", report.Metrics.Level.String()},
		{"Market Regime", report.Regime},
	}
	if err := writeSheet(fx, metricsSheet, metricsRows, headerStyle); err != nil {
		return nil, err
	}

	sizingRows := [][]interface{}{
		{"Field", "Value"},
		{"Account Balance", report.AccountBalance},
		{"Entry Price", report.EntryPrice},
		{"Stop Loss", report.StopLoss},
		{"Position Size (USD)", report.Sizing.PositionSizeUSD},
		{"Position Size (base)", report.Sizing.PositionSizeBase},
		{"Risk Amount", report.Sizing.RiskAmount},
		{"Risk Percentage", report.Sizing.RiskPercentage},
		{"Leverage", report.Sizing.Leverage},
		{"Stop Distance %", report.Sizing.StopLossDistancePct},
		{"Volatility Adjustment", report.Sizing.VolatilityAdjustment},
		{"Regime Multiplier", report.Sizing.RegimeMultiplier},
		{"Kelly Fraction", report.Kelly},
	}
	if err := writeSheet(fx, sizingSheet, sizingRows, headerStyle); err != nil {
		return nil, err
	}

	return fx, nil
}

func writeSheet(fx *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to resolve cell: %w", err)
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := fx.SetCellStyle(sheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := fx.SetColWidth(sheet, "A", "A", 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return fx.SetColWidth(sheet, "B", "B", 20)
}
