package domain

import "github.com/shopspring/decimal"

// DailySummary aggregates one day's non-cancelled movements, partitioned by
// whether each split's payment method is cash.
type DailySummary struct {
	TotalIn     decimal.Decimal `json:"totalIn"`
	TotalOut    decimal.Decimal `json:"totalOut"`
	Balance     decimal.Decimal `json:"balance"`
	CashIn      decimal.Decimal `json:"cashIn"`
	CashOut     decimal.Decimal `json:"cashOut"`
	CashBalance decimal.Decimal `json:"cashBalance"`
	NonCashIn   decimal.Decimal `json:"nonCashIn"`
	NonCashOut  decimal.Decimal `json:"nonCashOut"`
}

// MethodTotals is one day's per-payment-method breakdown.
type MethodTotals struct {
	MethodID   string          `json:"methodID"`
	MethodName string          `json:"methodName"`
	IsCash     bool            `json:"isCash"`
	TotalIn    decimal.Decimal `json:"totalIn"`
	TotalOut   decimal.Decimal `json:"totalOut"`
}
