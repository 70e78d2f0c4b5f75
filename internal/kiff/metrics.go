package kiff

import (
	"math"
	"time"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
)

const daysPerYear = 365.25

// BVM computes the baseline subsistence budget for a household. The
// multiplier log10(9·n³) grows faster than linearly with household size and
// the result is floored at the single-person base.
func BVM(base float64, householdSize int) float64 {
	if householdSize < 1 {
		householdSize = 1
	}
	n := float64(householdSize)
	multiplier := math.Log10(9 * n * n * n)
	return math.Max(base, base*multiplier)
}

// Reserve sums the balances of liquid accounts. Savings, investment, crypto
// and credit products do not count towards spendable reserve.
func Reserve(accounts []domain.BankAccount) float64 {
	var reserve float64
	for i := range accounts {
		if accounts[i].IsLiquid() {
			reserve += accounts[i].Balance
		}
	}
	return reserve
}

// Cushion expresses the reserve as a number of days of budget coverage,
// capped at 20 so a large idle balance cannot inflate the score without
// bound.
func Cushion(reserve, referenceAnnualBudget float64) float64 {
	dailyBudget := referenceAnnualBudget / daysPerYear
	denom := math.Max(1, math.Abs(dailyBudget))
	return math.Min(reserve/denom, 20)
}

// SurvivalMonths estimates how many months the reserve covers the observed
// debit rate. The averaging window is the actual span between the earliest
// and latest debit dates, never less than one month, so a short history does
// not overstate the burn rate.
func SurvivalMonths(reserve float64, debits []domain.Transaction) float64 {
	if len(debits) == 0 || reserve <= 0 {
		return 0
	}
	var total float64
	earliest, latest := debits[0].Date, debits[0].Date
	for _, d := range debits {
		total += math.Max(d.Amount, 0)
		if d.Date.Before(earliest) {
			earliest = d.Date
		}
		if d.Date.After(latest) {
			latest = d.Date
		}
	}
	if total == 0 {
		return 0
	}
	spanMonths := math.Max(1, latest.Sub(earliest).Hours()/24/30.44)
	avgMonthlyDebits := total / spanMonths
	return reserve / avgMonthlyDebits
}

// StabilityScore grades long-term resilience on a 0-100 scale and attaches
// the qualitative mood tag.
func StabilityScore(survivalMonths, rawKiff float64) (float64, string) {
	var bonus float64
	switch {
	case rawKiff > 30:
		bonus = 20
	case rawKiff > 15:
		bonus = 10
	}
	score := round2(math.Min(100, survivalMonths*10+bonus))

	mood := "alerte"
	switch {
	case score > 80:
		mood = "relax"
	case score > 50:
		mood = "serré"
	}
	return score, mood
}

// DailyAvgSpending averages debit amounts over a trailing window (90 days by
// default).
func DailyAvgSpending(debits []domain.Transaction, now time.Time, windowDays int) float64 {
	if windowDays <= 0 {
		windowDays = 90
	}
	since := now.AddDate(0, 0, -windowDays+1)
	var total float64
	for _, d := range debits {
		if !d.Date.Before(since) {
			total += math.Max(d.Amount, 0)
		}
	}
	return total / float64(windowDays)
}

// DaysLeftInMonth returns the number of days remaining in the month of date,
// including date itself, and the length of that month.
func DaysLeftInMonth(date time.Time) (daysLeft, lastDay int) {
	lastDay = time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location()).Day()
	daysLeft = lastDay - date.Day() + 1
	return daysLeft, lastDay
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
