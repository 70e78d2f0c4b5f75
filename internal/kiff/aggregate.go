package kiff

import (
	"math"
	"time"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
)

// AnnualMetrics is the forward-looking yearly projection built from the
// trailing twelve months of history plus household configuration.
type AnnualMetrics struct {
	AnnualRevenue    float64
	AnnualCharge     float64
	WeightedProjects float64
	SavingsTarget    float64
	AnnualBudget     float64
	AnnualKiff       float64
}

// MonthlyMetrics estimates what remains of the current month.
type MonthlyMetrics struct {
	MonthlyRemainingBudget float64
	MonthlyKiff            float64
}

// ComputeAnnualMetrics projects the yearly budget. The annual charge is the
// larger of the observed trailing-12-month debits and the current month's
// debits extrapolated to a full year, which guards against an incomplete
// month understating the burn. Fully flexible planned projects are
// discounted to zero, fully fixed ones count in full.
func ComputeAnnualMetrics(credits, debits []domain.Transaction, opts Options, now time.Time) AnnualMetrics {
	since := now.AddDate(-1, 0, 0)

	var totalCredits, totalDebits float64
	for _, c := range credits {
		if !c.Date.Before(since) {
			totalCredits += math.Max(c.Amount, 0)
		}
	}
	for _, d := range debits {
		if !d.Date.Before(since) {
			totalDebits += math.Max(d.Amount, 0)
		}
	}

	annualRevenue := totalCredits
	if opts.AnnualRevenueOverride != nil {
		annualRevenue = *opts.AnnualRevenueOverride
	}
	annualCharge := math.Max(totalDebits, currentMonthDebits(debits, now)*12)

	var weightedProjects float64
	for _, p := range opts.AnnualProjects {
		flexibility := math.Max(0, math.Min(1, p.Flexibility))
		weightedProjects += p.Amount * (1 - flexibility)
	}

	annualBudget := annualRevenue - annualCharge - weightedProjects - opts.AnnualSavingsTarget

	return AnnualMetrics{
		AnnualRevenue:    annualRevenue,
		AnnualCharge:     annualCharge,
		WeightedProjects: weightedProjects,
		SavingsTarget:    opts.AnnualSavingsTarget,
		AnnualBudget:     annualBudget,
		AnnualKiff:       math.Max(0, annualBudget/daysPerYear),
	}
}

// currentMonthDebits sums the debits observed since the first day of the
// current month.
func currentMonthDebits(debits []domain.Transaction, now time.Time) float64 {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var total float64
	for _, d := range debits {
		if !d.Date.Before(startOfMonth) {
			total += math.Max(d.Amount, 0)
		}
	}
	return total
}

// ComputeMonthlyMetrics estimates the spendable budget for the rest of the
// current month: liquid reserve plus the income still expected, minus the
// prorated fixed expenses, the prorated subsistence baseline and the average
// discretionary spend over the remaining days.
func ComputeMonthlyMetrics(credits, debits []domain.Transaction, opts Options, bvm, reserve float64, now time.Time) MonthlyMetrics {
	daysLeft, lastDay := DaysLeftInMonth(now)
	windowStart := now.AddDate(0, 0, -30)

	var creditsThisMonth float64
	for _, c := range credits {
		if !c.Date.Before(windowStart) {
			creditsThisMonth += math.Max(c.Amount, 0)
		}
	}

	// Average monthly income over the trailing year, used when no explicit
	// remaining-income override is configured.
	var avgMonthlyCredits float64
	if len(credits) > 0 {
		yearStart := windowStart.AddDate(-1, 0, 0)
		var creditsLastYear float64
		for _, c := range credits {
			if !c.Date.Before(yearStart) {
				creditsLastYear += math.Max(c.Amount, 0)
			}
		}
		avgMonthlyCredits = creditsLastYear / 12
	}

	estimatedRemainingIncome := math.Max(0, avgMonthlyCredits-creditsThisMonth)
	if opts.RemainingMonthlyIncome != nil {
		estimatedRemainingIncome = math.Max(0, *opts.RemainingMonthlyIncome)
	}

	var debitsThisMonth float64
	for _, d := range debits {
		if !d.Date.Before(windowStart) {
			debitsThisMonth += math.Max(d.Amount, 0)
		}
	}

	fDaysLeft := float64(daysLeft)
	fLastDay := float64(lastDay)
	estimatedFixedExpenses := (debitsThisMonth / fLastDay) * fDaysLeft
	bvmProrata := (bvm / fLastDay) * fDaysLeft
	dailyAvg := DailyAvgSpending(debits, now, opts.DailyAverageWindowDays)

	totalAvailable := reserve + estimatedRemainingIncome
	totalEstimatedExpenses := estimatedFixedExpenses + dailyAvg*fDaysLeft + bvmProrata

	remaining := totalAvailable - totalEstimatedExpenses
	return MonthlyMetrics{
		MonthlyRemainingBudget: remaining,
		MonthlyKiff:            math.Max(0, remaining/math.Max(1, fDaysLeft)),
	}
}
