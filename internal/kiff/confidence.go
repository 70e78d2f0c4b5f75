package kiff

import (
	"math"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
	"github.com/hrslabs/kiffscore/internal/kiff/stats"
)

const outlierThreshold = 3 // standard deviations

// DetectOutlierSpending flags an anomalous most-recent debit: one whose
// absolute amount deviates from the mean of the earlier debits by more than
// outlierThreshold standard deviations. The latest debit is excluded from
// its own baseline, otherwise a single large spike inflates the deviation
// enough to hide itself. Needs at least two data points.
func DetectOutlierSpending(debits []domain.Transaction) bool {
	if len(debits) < 2 {
		return false
	}
	latest := 0
	for i, d := range debits {
		if d.Date.After(debits[latest].Date) {
			latest = i
		}
	}
	baseline := make([]float64, 0, len(debits)-1)
	for i, d := range debits {
		if i != latest {
			baseline = append(baseline, math.Abs(d.Amount))
		}
	}
	deviation := stats.StdDev(baseline)
	if deviation == 0 {
		return false
	}
	return math.Abs(math.Abs(debits[latest].Amount)-stats.Mean(baseline)) > outlierThreshold*deviation
}

// DataConfidence scores in [0,1] how much history backs the estimates:
// volume of transactions, category spread and number of distinct active
// days each contribute additively.
func DataConfidence(debits []domain.Transaction) float64 {
	var confidence float64
	if len(debits) > 30 {
		confidence += 0.4
	}

	categories := make(map[string]struct{})
	days := make(map[string]struct{})
	for _, d := range debits {
		if d.CategoryID != nil {
			categories[*d.CategoryID] = struct{}{}
		} else if d.BaseCategory != nil {
			categories[*d.BaseCategory] = struct{}{}
		}
		days[d.Date.Format("2006-01-02")] = struct{}{}
	}
	if len(categories) > 5 {
		confidence += 0.3
	}
	if len(days) > 20 {
		confidence += 0.3
	}
	return math.Min(1, confidence)
}
