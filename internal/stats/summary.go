package stats

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/sandeepbabloo/loan-primer/internal/core"
)

var twelve = decimal.NewFromInt(12)

// Summarize condenses a MonthlyStats series into the overall metrics
// block: totals, annualized figures, volatility and trend ratios.
// An empty series yields a zero Summary.
func Summarize(rows []core.MonthlyStats) core.Summary {
	sum := core.Summary{AvailableMonths: len(rows)}
	if len(rows) == 0 {
		return sum
	}

	var (
		eodTotal decimal.Decimal
		eodCount int64
		credits  = make([]float64, 0, len(rows))
		debits   = make([]float64, 0, len(rows))
	)
	for _, row := range rows {
		sum.TotalBTCredit = sum.TotalBTCredit.Add(row.BTCredit)
		sum.TotalBTDebit = sum.TotalBTDebit.Add(row.BTDebit)
		sum.TotalExpense = sum.TotalExpense.Add(row.Expense)
		credits = append(credits, row.BTCredit.InexactFloat64())
		debits = append(debits, row.BTDebit.InexactFloat64())
		if row.EOD.Valid {
			eodTotal = eodTotal.Add(row.EOD.Decimal)
			eodCount++
		}
	}

	if eodCount > 0 {
		sum.AverageEOD = decimal.NullDecimal{
			Decimal: eodTotal.DivRound(decimal.NewFromInt(eodCount), 2),
			Valid:   true,
		}
	}

	n := decimal.NewFromInt(int64(len(rows)))
	sum.AnnualizedBTCredit = sum.TotalBTCredit.Mul(twelve).DivRound(n, 0)
	sum.AnnualizedBTDebit = sum.TotalBTDebit.Mul(twelve).DivRound(n, 0)

	sum.CreditVolatility = volatility(credits)
	sum.DebitVolatility = volatility(debits)
	sum.SalesTrend = trendRatio(credits)
	sum.PurchaseTrend = trendRatio(debits)
	return sum
}

// volatility is the coefficient of variation (sample standard deviation
// over mean) of the strictly positive values. Fewer than two positive
// values means there is nothing to vary.
func volatility(values []float64) float64 {
	pos := positives(values)
	if len(pos) < 2 {
		return 0
	}
	m := mean(pos)
	if m == 0 {
		return 0
	}
	var ss float64
	for _, v := range pos {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss/float64(len(pos)-1)) / m
}

// trendRatio compares the recent half of the series against the older
// half, positive values only. 1 means flat or undeterminable.
func trendRatio(values []float64) float64 {
	if len(values) < 3 {
		return 1
	}
	mid := len(values) / 2
	recent := mean(positives(values[mid:]))
	older := mean(positives(values[:mid]))
	if older == 0 {
		if recent == 0 {
			return 1
		}
		return math.Inf(1)
	}
	return recent / older
}

func positives(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}
