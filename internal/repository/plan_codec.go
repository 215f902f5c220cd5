package repository

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"AlphaPlan/internal/domain/models"
)

// EncodePlan renders a trade plan as the flat line-oriented artifact: a
// header carrying the generation timestamp and risk summary, then one line
// per asset in universe order:
//
//	# plan generated=<RFC3339> gross=<x> max=<y>
//	<asset_id> <position_fraction> <confidence>
//
// Formatting is fixed six-decimal, so identical inputs produce identical
// bytes modulo the timestamp.
func EncodePlan(plan *models.TradePlan) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# plan generated=%s gross=%s max=%s\n",
		plan.GeneratedAt.UTC().Format(time.RFC3339),
		formatFraction(plan.RiskSummary.GrossExposure),
		formatFraction(plan.RiskSummary.MaxPosition))
	for _, p := range plan.Positions {
		fmt.Fprintf(&b, "%s %s %s\n", p.Asset, formatFraction(p.Fraction), formatFraction(p.Confidence))
	}
	return b.Bytes()
}

func formatFraction(v float64) string {
	if v == 0 {
		v = 0 // normalize negative zero
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
