// Package calculator computes how a bill is split and settled.
//
// Everything here is a pure function over money.Money minor units: no
// function mutates its input, keeps state between calls or returns an
// error. Empty input yields empty output.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
)

// Divide splits total into n shares that add up to exactly total.
//
// Every share is floor(total/n) minor units; the remainder is handed out one
// minor unit at a time to the first shares. Divide(10.00, 3) is therefore
// [3.34, 3.33, 3.33]. For n <= 0 it returns an empty slice.
func Divide(total money.Money, n int) []money.Money {
	if n <= 0 {
		return []money.Money{}
	}

	count := money.Money(n)
	base := total / count
	remainder := total % count
	// Floor division, so the remainder is never negative.
	if remainder < 0 {
		base--
		remainder += count
	}

	shares := make([]money.Money, n)
	for i := range shares {
		shares[i] = base
		if money.Money(i) < remainder {
			shares[i]++
		}
	}
	return shares
}

// Sum adds amounts exactly. The result does not depend on their order.
func Sum(amounts []money.Money) money.Money {
	var total money.Money
	for _, a := range amounts {
		total += a
	}
	return total
}

// SumDecimals adds decimal amounts by converting each one to minor units
// first, so the result is rounded the same way no matter the order.
func SumDecimals(amounts []decimal.Decimal, places int32) decimal.Decimal {
	minor := make([]money.Money, len(amounts))
	for i, a := range amounts {
		minor[i] = money.ToMinorUnits(a, places)
	}
	return money.FromMinorUnits(Sum(minor), places)
}

// BillTotal returns the sum of every item price on the bill.
func BillTotal(bill *models.Bill) money.Money {
	items := bill.Items()
	prices := make([]money.Money, len(items))
	for i, it := range items {
		prices[i] = it.Price
	}
	return Sum(prices)
}
