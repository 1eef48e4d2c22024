package calculator

import (
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/money"
)

// settleTolerance is half a minor unit expressed in half units. Balances are
// whole minor units, so any non-zero balance is above it.
const settleTolerance = 1

func aboveTolerance(m money.Money) bool {
	return 2*m > settleTolerance
}

type outstanding struct {
	name   string
	amount money.Money
}

// PlanSettlement turns net balances into payments that bring every balance
// to zero.
//
// Debtors and creditors are matched greedily in participant-list order (not
// by balance size): the current debtor pays the current creditor the smaller
// of the two outstanding amounts, and whichever side reaches zero moves on.
// The result is deterministic but not always the fewest possible transfers.
// Balances that are already settled yield an empty list.
func PlanSettlement(shares models.Shares) []models.Transfer {
	var debtors, creditors []outstanding
	for _, s := range shares {
		switch {
		case aboveTolerance(-s.Net):
			debtors = append(debtors, outstanding{name: s.Participant, amount: -s.Net})
		case aboveTolerance(s.Net):
			creditors = append(creditors, outstanding{name: s.Participant, amount: s.Net})
		}
	}

	transfers := []models.Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		payment := min(debtor.amount, creditor.amount)
		if aboveTolerance(payment) {
			transfers = append(transfers, models.Transfer{
				From:   debtor.name,
				To:     creditor.name,
				Amount: payment,
			})
		}

		debtor.amount -= payment
		creditor.amount -= payment

		if !aboveTolerance(debtor.amount) {
			i++
		}
		if !aboveTolerance(creditor.amount) {
			j++
		}
	}
	return transfers
}
