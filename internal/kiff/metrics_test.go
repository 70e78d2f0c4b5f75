package kiff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hrslabs/kiffscore/internal/finance/domain"
)

func debitOn(date time.Time, amount float64) domain.Transaction {
	return domain.Transaction{
		Amount:    amount,
		Direction: domain.DirectionDebit,
		Status:    domain.StatusCompleted,
		Date:      date,
	}
}

func TestBVM(t *testing.T) {
	// A single-person household is floored at the base.
	assert.Equal(t, 300.0, BVM(300, 1))
	assert.Equal(t, 300.0, BVM(300, 0))

	// log10(9·4³) = log10(576) ≈ 2.7604
	assert.InDelta(t, 828.13, BVM(300, 4), 0.01)

	// Monotonic in household size.
	previous := BVM(300, 1)
	for size := 2; size <= 8; size++ {
		current := BVM(300, size)
		assert.Greater(t, current, previous, "BVM must grow with household size")
		previous = current
	}
}

func TestReserve_CountsOnlyLiquidAccounts(t *testing.T) {
	accounts := []domain.BankAccount{
		{Type: domain.AccountTypeCurrent, Balance: 100},
		{Type: domain.AccountTypeCash, Balance: 50},
		{Type: domain.AccountTypeLivretA, Balance: 10000},
		{Type: domain.AccountTypeCryptoWallet, Balance: 2500},
		{Type: domain.AccountTypeLoan, Balance: -4000},
	}
	assert.Equal(t, 150.0, Reserve(accounts))
}

func TestCushion(t *testing.T) {
	// 1000 of reserve over a 10/day budget would cover 100 days, capped at 20.
	assert.Equal(t, 20.0, Cushion(1000, 10*daysPerYear))
	assert.InDelta(t, 10.0, Cushion(100, 10*daysPerYear), 0.0001)

	// A negative budget is taken in absolute value, zero falls back to a
	// denominator of 1.
	assert.InDelta(t, 10.0, Cushion(100, -10*daysPerYear), 0.0001)
	assert.Equal(t, 20.0, Cushion(100, 0))
	assert.Equal(t, 0.0, Cushion(0, 10*daysPerYear))
}

func TestSurvivalMonths_DateSpanAveraging(t *testing.T) {
	// 1000 spent over 60 days: the burn rate is measured over the actual
	// span, not a fixed year.
	debits := []domain.Transaction{
		debitOn(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), 500),
		debitOn(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), 500),
	}
	assert.InDelta(t, 60.0/30.44, SurvivalMonths(1000, debits), 0.01)

	// A single-day history floors the span at one month.
	single := []domain.Transaction{debitOn(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC), 500)}
	assert.InDelta(t, 2.0, SurvivalMonths(1000, single), 0.0001)

	assert.Equal(t, 0.0, SurvivalMonths(0, debits))
	assert.Equal(t, 0.0, SurvivalMonths(-100, debits))
	assert.Equal(t, 0.0, SurvivalMonths(1000, nil))
}

func TestStabilityScore(t *testing.T) {
	score, mood := StabilityScore(9, 31)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, "relax", mood)

	score, mood = StabilityScore(5.5, 16)
	assert.Equal(t, 65.0, score)
	assert.Equal(t, "serré", mood)

	score, mood = StabilityScore(3, 10)
	assert.Equal(t, 30.0, score)
	assert.Equal(t, "alerte", mood)
}

func TestDailyAvgSpending(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	debits := []domain.Transaction{
		debitOn(now.AddDate(0, 0, -10), 450),
		debitOn(now.AddDate(0, 0, -200), 9999), // outside the window
	}
	assert.InDelta(t, 450.0/90, DailyAvgSpending(debits, now, 0), 0.0001)
	assert.InDelta(t, 450.0/30, DailyAvgSpending(debits, now, 30), 0.0001)
}

func TestDaysLeftInMonth(t *testing.T) {
	daysLeft, lastDay := DaysLeftInMonth(time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 2, daysLeft)
	assert.Equal(t, 28, lastDay)

	daysLeft, lastDay = DaysLeftInMonth(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 31, daysLeft)
	assert.Equal(t, 31, lastDay)
}
