package reporting

import (
	"time"

	"github.com/caravanmasterx/risk-engine/internal/risk"
)

// Report bundles one full risk assessment for output: the statistical
// snapshot, the regime label it was sized under, and the sizing
// decision.
type Report struct {
	Symbol    string
	Generated time.Time

	AccountBalance float64
	EntryPrice     float64
	StopLoss       float64
	Regime         string

	Metrics risk.Metrics
	Sizing  risk.SizeResult
	Kelly   float64

	Validation *risk.TradeValidation
}
