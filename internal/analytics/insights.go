package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// Return-rate and margin thresholds for the category insight rules.
const (
	returnRateDanger  = 15.0
	returnRateWarning = 10.0
	scoreSuccess      = 70.0
	marginWarning     = 10.0
)

// standingActions are the fixed action items appended to every
// non-empty category analysis.
var standingActions = []ActionItem{
	{Title: "Review High Return Categories", Description: "Investigate root causes of returns in categories with >10% return rate."},
	{Title: "Optimize Pricing", Description: "Consider adjusting prices in low margin categories to improve profitability."},
	{Title: "Expand Successful Categories", Description: "Invest more in top-performing categories to maximize revenue."},
	{Title: "Improve Descriptions", Description: "Add detailed product descriptions to reduce return rates."},
}

// generateInsights walks the category list in order and applies the
// fixed rule set. The danger/warning return-rate branches are mutually
// exclusive; the margin warning is not. Recommendations follow the
// per-category loop, then the standing action items.
func generateInsights(categories []CategoryStat, topCategories []CategoryStat) Insights {
	ins := emptyInsights()

	for _, cat := range categories {
		switch {
		case cat.ReturnRate > returnRateDanger:
			ins.Dangers = append(ins.Dangers, fmt.Sprintf(
				"%s has a high return rate of %s%%. Consider reviewing product quality or descriptions.",
				cat.Name, rate(cat.ReturnRate)))
		case cat.ReturnRate > returnRateWarning:
			ins.Warnings = append(ins.Warnings, fmt.Sprintf(
				"%s return rate is at %s%%. Monitor closely.",
				cat.Name, rate(cat.ReturnRate)))
		}

		if cat.PerformanceScore > scoreSuccess {
			ins.Successes = append(ins.Successes, fmt.Sprintf(
				"%s is performing excellently with a %s%% score.",
				cat.Name, rate(cat.PerformanceScore)))
		}

		if cat.ProfitMargin < marginWarning {
			ins.Warnings = append(ins.Warnings, fmt.Sprintf(
				"%s has low profit margin of %s%%. Consider optimizing costs.",
				cat.Name, rate(cat.ProfitMargin)))
		}
	}

	if len(ins.Dangers) > 0 {
		ins.Recommendations = append(ins.Recommendations,
			"Focus on categories with high return rates first - consider quality control and better product descriptions.")
	}
	if len(topCategories) > 0 {
		ins.Recommendations = append(ins.Recommendations, fmt.Sprintf(
			"%s is your top performer - consider expanding this category.", topCategories[0].Name))
	}

	ins.Actions = append(ins.Actions, standingActions...)
	return ins
}

// rate renders a percentage the way the dashboard always has: shortest
// round-trip decimal form, with whole numbers keeping a ".0" suffix
// (20.0, 33.33). Values arrive pre-rounded where the stat itself is
// rounded; profit margin prints at full precision.
func rate(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
