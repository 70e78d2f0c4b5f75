package kiff

import (
	"log"
	"math"
	"time"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
)

// AccountSource and TransactionSource are the two reads the scorer needs.
// Both are satisfied by the finance repositories.
type AccountSource interface {
	FindAllByUser(userID string) ([]domain.BankAccount, error)
}

type TransactionSource interface {
	FindAllByUser(userID string, limit, offset int) ([]domain.Transaction, error)
}

// Scorer computes the financial-wellness score for a user. The computation
// itself is pure; the only side effects are the two fetches at the start.
type Scorer struct {
	accounts     AccountSource
	transactions TransactionSource
	now          func() time.Time
}

func NewScorer(accounts AccountSource, transactions TransactionSource) *Scorer {
	return &Scorer{accounts: accounts, transactions: transactions, now: time.Now}
}

// Low-data tuning. All three are expressed as fractions of the
// daily-equivalent BVM (BVM/30): the hard floor of the blended estimate,
// the conservative fallback used when the reserve is exhausted and the
// latest debit looks anomalous, and the upper clamp.
const (
	lowDataFloorRatio    = 0.1
	lowDataFallbackRatio = 0.25
	lowDataCeilingRatio  = 3
)

// ComputeScore fetches the user's accounts and transactions, classifies the
// request as normal or low-data and assembles the score snapshot. Fetch
// failures are treated as empty history so the request degrades into
// low-data mode instead of failing.
func (s *Scorer) ComputeScore(userID string, opts Options) (*Result, error) {
	opts = opts.normalized()
	now := s.now()

	accounts, transactions := s.fetch(userID, opts.TransactionLimit)

	bvm := BVM(opts.BaseBVM, opts.HouseholdSize)
	reserve := Reserve(accounts)
	credits, debits := splitTransactions(transactions)

	annual := ComputeAnnualMetrics(credits, debits, opts, now)
	monthly := ComputeMonthlyMetrics(credits, debits, opts, bvm, reserve, now)

	lowData := isLowData(transactions, now)
	kiffRaw := math.Min(annual.AnnualKiff, monthly.MonthlyKiff)

	var cushion, adjustedKiff float64
	if lowData {
		kiffRaw = lowDataKiff(reserve, monthly.MonthlyRemainingBudget, bvm, debits, now)
		cushion = Cushion(reserve, bvm*12)
		adjustedKiff = math.Max(1, kiffRaw+cushion*0.5)
	} else {
		cushion = Cushion(reserve, annual.AnnualBudget)
		adjustedKiff = kiffRaw + cushion
	}

	survivalMonths := SurvivalMonths(reserve, debits)
	stabilityScore, mood := StabilityScore(survivalMonths, kiffRaw)

	mode := ModeNormal
	if lowData {
		mode = ModeLowData
	}

	return &Result{
		Mode:                   mode,
		HouseholdSize:          opts.HouseholdSize,
		BVM:                    round2(bvm),
		MonthlyRemainingBudget: round2(monthly.MonthlyRemainingBudget),
		MonthlyKiff:            round2(monthly.MonthlyKiff),
		AnnualBudget:           round2(annual.AnnualBudget),
		AnnualKiff:             round2(annual.AnnualKiff),
		RawKiff:                round2(kiffRaw),
		LiquidReserve:          round2(reserve),
		Cushion:                round2(cushion),
		AdjustedKiff:           round2(adjustedKiff),
		SurvivalMonths:         round2(survivalMonths),
		StabilityScore:         stabilityScore,
		Mood:                   mood,
		Details: ResultDetails{
			AnnualCharge:     round2(annual.AnnualCharge),
			WeightedProjects: round2(annual.WeightedProjects),
			AnnualRevenue:    round2(annual.AnnualRevenue),
			DailyAvgSpending: round2(DailyAvgSpending(debits, now, opts.DailyAverageWindowDays)),
		},
	}, nil
}

// fetch loads accounts and transactions concurrently. Either failure is
// logged and degraded to an empty slice.
func (s *Scorer) fetch(userID string, limit int) ([]domain.BankAccount, []domain.Transaction) {
	var (
		accounts     []domain.BankAccount
		transactions []domain.Transaction
	)
	done := make(chan struct{}, 2)

	go func() {
		var err error
		accounts, err = s.accounts.FindAllByUser(userID)
		if err != nil {
			log.Printf("Score accounts fetch failed, scoring with empty accounts: %v", err)
			accounts = nil
		}
		done <- struct{}{}
	}()
	go func() {
		var err error
		transactions, err = s.transactions.FindAllByUser(userID, limit, 0)
		if err != nil {
			log.Printf("Score transactions fetch failed, scoring with empty history: %v", err)
			transactions = nil
		}
		done <- struct{}{}
	}()
	<-done
	<-done
	return accounts, transactions
}

func splitTransactions(transactions []domain.Transaction) (credits, debits []domain.Transaction) {
	for _, t := range transactions {
		switch t.Direction {
		case domain.DirectionCredit:
			credits = append(credits, t)
		case domain.DirectionDebit:
			debits = append(debits, t)
		}
	}
	return credits, debits
}

// isLowData classifies the request: fewer than 10 transactions overall, or
// fewer than 2 distinct calendar months touched within the trailing two
// months, means the direct projection formulas cannot be trusted.
func isLowData(transactions []domain.Transaction, now time.Time) bool {
	if len(transactions) < 10 {
		return true
	}
	cutoff := now.AddDate(0, -2, 0)
	months := make(map[string]struct{})
	for _, t := range transactions {
		if t.Date.After(cutoff) {
			months[t.Date.Format("2006-01")] = struct{}{}
		}
	}
	return len(months) < 2
}

// lowDataKiff is the sparse-history heuristic: blend the per-day reserve and
// the per-day remaining budget, discount by data confidence and clamp to a
// band derived from the daily-equivalent BVM. When the reserve is exhausted
// and the latest debit looks anomalous, fall back to a conservative
// constant instead.
func lowDataKiff(reserve, monthlyRemainingBudget, bvm float64, debits []domain.Transaction, now time.Time) float64 {
	daysLeft, _ := DaysLeftInMonth(now)
	fDaysLeft := math.Max(1, float64(daysLeft))
	bvmPerDay := bvm / 30

	negativeOrNearZero := reserve <= 0 || monthlyRemainingBudget < 0
	if negativeOrNearZero && DetectOutlierSpending(debits) {
		return lowDataFallbackRatio * bvmPerDay
	}

	reservePerDay := reserve / fDaysLeft
	budgetPerDay := math.Max(0, monthlyRemainingBudget) / fDaysLeft
	blended := 0.6*reservePerDay + 0.4*budgetPerDay

	confidence := DataConfidence(debits)
	estimate := blended * (0.5 + 0.5*confidence)

	floor := lowDataFloorRatio * bvmPerDay
	ceiling := lowDataCeilingRatio * bvmPerDay
	return math.Max(floor, math.Min(ceiling, estimate))
}
