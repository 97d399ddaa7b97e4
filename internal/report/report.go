// Package report renders computed statistics into the row grid written
// to the STAT sheet. It knows labels and ordering, nothing about cell
// styling or any particular spreadsheet format.
package report

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/sandeepbabloo/loan-primer/internal/core"
	"github.com/sandeepbabloo/loan-primer/internal/ledger"
)

// Row labels of the monthly block, in sheet order.
const (
	labelEOD             = "EOD monthly balance"
	labelBTCredit        = "Credit (BT)"
	labelBTDebit         = "Debit (BT)"
	labelExpense         = "Expense"
	labelZIHCredit       = "ZIH Cr"
	labelZIHDebit        = "ZIH Dr"
	labelDBTCredit       = "DBT (Cr)"
	labelDBTDebit        = "DBT (Dr)"
	labelLoanPayBank     = "Monthly Loan payments Bank"
	labelLoanPayPvt      = "Monthly Loan payments Pvt"
	labelLoanRecvBank    = "Loan received Bank"
	labelLoanRecvPvt     = "Loan received Pvt"
	labelNetZIH          = "Net ZIH Cr (ZIH Cr - ZIH Dr)"
	labelCashFlow        = "Cash Flow (Credit - Debit - Expense)"
	labelNetECS          = "Net ECS Cr (ECS Cr - ECS Dr)"
	labelNetECSPvt       = "Net ECS Pvt Cr (ECS Pvt Cr - ECS Pvt Dr)"
	labelNetECSAll       = "Net ECS (Bank + Pvt)"
	labelNetDBT          = "Net DBT"
	labelNetFlow         = "Net flow"
	labelCashCount       = "Count of Cash Trn"
	labelTrnCount        = "Count of Transactions"
	labelMonths          = "Available Months"
	labelAvgEOD          = "Average EOD monthly balance"
	labelTotalExpense    = "Total Expense"
	labelCreditVol       = "Credit (BT) Volatility"
	labelDebitVol        = "Debit (BT) Volatility"
	labelSalesTrend      = "Sales trend"
	labelPurchaseTrend   = "Purchase trend"
	headerMonthlySection = "Monthly Data (Bank Statement)"
	headerSummarySection = "Overall Metrics (Bank Statement)"
	headerAnnualized     = "Annualized"
)

// monthlyFields drives the monthly block: one labeled sheet row per
// entry, columns following the month order of rows.
var monthlyFields = []struct {
	label string
	value func(core.MonthlyStats) any
}{
	{labelEOD, func(m core.MonthlyStats) any { return nullDecimalCell(m.EOD) }},
	{labelBTCredit, func(m core.MonthlyStats) any { return cell(m.BTCredit) }},
	{labelBTDebit, func(m core.MonthlyStats) any { return cell(m.BTDebit) }},
	{labelExpense, func(m core.MonthlyStats) any { return cell(m.Expense) }},
	{labelZIHCredit, func(m core.MonthlyStats) any { return cell(m.ZIHCredit) }},
	{labelZIHDebit, func(m core.MonthlyStats) any { return cell(m.ZIHDebit) }},
	{labelDBTCredit, func(m core.MonthlyStats) any { return cell(m.DBTCredit) }},
	{labelDBTDebit, func(m core.MonthlyStats) any { return cell(m.DBTDebit) }},
	{labelLoanPayBank, func(m core.MonthlyStats) any { return cell(m.ECSBankPayment) }},
	{labelLoanPayPvt, func(m core.MonthlyStats) any { return cell(m.ECSPrivatePayment) }},
	{labelLoanRecvBank, func(m core.MonthlyStats) any { return cell(m.ECSBankReceived) }},
	{labelLoanRecvPvt, func(m core.MonthlyStats) any { return cell(m.ECSPrivateReceived) }},
	{labelNetZIH, func(m core.MonthlyStats) any { return cell(m.NetZIH) }},
	{labelCashFlow, func(m core.MonthlyStats) any { return cell(m.CashFlow) }},
	{labelNetECS, func(m core.MonthlyStats) any { return cell(m.NetECSBank) }},
	{labelNetECSPvt, func(m core.MonthlyStats) any { return cell(m.NetECSPrivate) }},
	{labelNetECSAll, func(m core.MonthlyStats) any { return cell(m.NetECS) }},
	{labelNetDBT, func(m core.MonthlyStats) any { return cell(m.NetDBT) }},
	{labelNetFlow, func(m core.MonthlyStats) any { return cell(m.NetFlow) }},
	{labelCashCount, func(m core.MonthlyStats) any { return m.CashCount }},
	{labelTrnCount, func(m core.MonthlyStats) any { return m.TransactionCount }},
}

// Build renders the STAT sheet grid: a month-label header, the monthly
// block, a spacer, then the overall metrics block.
func Build(rows []core.MonthlyStats, sum core.Summary) [][]any {
	width := len(rows) + 1

	grid := make([][]any, 0, len(monthlyFields)+16)

	header := make([]any, 0, width)
	header = append(header, headerMonthlySection)
	for _, row := range rows {
		header = append(header, row.MonthLabel())
	}
	grid = append(grid, header)

	for _, field := range monthlyFields {
		line := make([]any, 0, width)
		line = append(line, field.label)
		for _, row := range rows {
			line = append(line, field.value(row))
		}
		grid = append(grid, line)
	}

	grid = append(grid, spacer(width))
	grid = append(grid, summaryRows(sum)...)
	return grid
}

// summaryRows renders the overall metrics block. Monetary totals come
// with an annualized column where the source sheet carried one.
func summaryRows(sum core.Summary) [][]any {
	return [][]any{
		{headerSummarySection, "Value", headerAnnualized},
		{labelMonths, sum.AvailableMonths},
		{labelAvgEOD, nullDecimalCell(sum.AverageEOD)},
		{labelBTCredit, cell(sum.TotalBTCredit), cell(sum.AnnualizedBTCredit)},
		{labelBTDebit, cell(sum.TotalBTDebit), cell(sum.AnnualizedBTDebit)},
		{labelTotalExpense, cell(sum.TotalExpense)},
		{labelCreditVol, ratioCell(sum.CreditVolatility)},
		{labelDebitVol, ratioCell(sum.DebitVolatility)},
		{labelSalesTrend, ratioCell(sum.SalesTrend)},
		{labelPurchaseTrend, ratioCell(sum.PurchaseTrend)},
	}
}

// LedgerRows renders the loaded records back into an SRT-shaped grid,
// canonical column order, for the ledger copy in the output file.
func LedgerRows(records []core.Record) [][]any {
	grid := make([][]any, 0, len(records)+1)

	header := make([]any, len(ledger.RequiredColumns))
	for i, col := range ledger.RequiredColumns {
		header[i] = col
	}
	grid = append(grid, header)

	for _, rec := range records {
		var seq any
		if rec.Seq != nil {
			seq = *rec.Seq
		}
		var date any
		if rec.HasDate() {
			date = rec.Date.Format("2006-01-02")
		}
		grid = append(grid, []any{
			seq, rec.Group, date, rec.Description,
			cell(rec.Debit), cell(rec.Credit), nullDecimalCell(rec.Balance),
			rec.Category, rec.Classification, rec.Tag,
		})
	}
	return grid
}

func spacer(width int) []any {
	return make([]any, width)
}

// cell converts a decimal to the float the spreadsheet cell holds.
// Source amounts carry currency precision, well within float64 range.
func cell(d decimal.Decimal) any {
	return d.InexactFloat64()
}

func nullDecimalCell(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return cell(d.Decimal)
}

// ratioCell rounds statistical ratios to two decimals; an infinite
// trend is rendered as text the way spreadsheets do.
func ratioCell(v float64) any {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return math.Round(v*100) / 100
}
